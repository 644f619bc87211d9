package gopsd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

/*
 * Synthetic subframe construction.  These build the 24-bit payload
 * words a satellite would have handed to its framer, then apply the
 * transport framing (parity, optional polarity inversion) on top.
 */

// tlm_payload is a word 0 payload: preamble in the top byte, then a
// TLM message we don't care about.
func tlm_payload(tlm uint32) uint32 {
	return PREAMBLE_PATTERN<<16 | tlm&0xffff
}

// how_payload is a word 1 payload: 17-bit TOW count, flag bit, 3-bit
// subframe id.
func how_payload(tow uint32, flags uint32, id uint32) uint32 {
	return (tow&0x1ffff)<<7 | (flags&1)<<6 | (id&7)<<2
}

// page_payload is a word 2 payload for subframes 4 and 5.
func page_payload(data_id uint32, pageid uint32, rest uint32) uint32 {
	return (data_id&3)<<22 | (pageid&0x3f)<<16 | rest&0xffff
}

func frame_subframe(payloads [WORDS_PER_SUBFRAME]uint32) [WORDS_PER_SUBFRAME]uint32 {
	var raw [WORDS_PER_SUBFRAME]uint32
	for i, p := range payloads {
		raw[i] = isgps_frame_word(p)
	}
	return raw
}

// invert_data complements the data region, as the transport does when
// polarity flips mid-stream, and sets D30* to say so.
func invert_data(word uint32) uint32 {
	return (word ^ W_DATA_MASK) | W_INVERT_BIT
}

func TestNormalizeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var payloads [WORDS_PER_SUBFRAME]uint32
		payloads[0] = tlm_payload(rapid.Uint32Range(0, 0xffff).Draw(t, "tlm"))
		for i := 1; i < WORDS_PER_SUBFRAME; i++ {
			payloads[i] = rapid.Uint32Range(0, 0xffffff).Draw(t, "payload")
		}

		var normalized, err = subframe_normalize(1, frame_subframe(payloads))
		require.NoError(t, err)
		assert.Equal(t, payloads, normalized)
	})
}

func TestNormalizeInversionIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var payloads [WORDS_PER_SUBFRAME]uint32
		payloads[0] = tlm_payload(rapid.Uint32Range(0, 0xffff).Draw(t, "tlm"))
		for i := 1; i < WORDS_PER_SUBFRAME; i++ {
			payloads[i] = rapid.Uint32Range(0, 0xffffff).Draw(t, "payload")
		}

		var straight = frame_subframe(payloads)
		var want, err = subframe_normalize(1, straight)
		require.NoError(t, err)

		// Invert word 0, and words 1-9 per an arbitrary subset.
		var twisted = straight
		if rapid.Bool().Draw(t, "invert0") {
			twisted[0] ^= W_DATA_MASK
		}
		var subset = rapid.Uint32Range(0, 0x1ff).Draw(t, "subset")
		for i := 1; i < WORDS_PER_SUBFRAME; i++ {
			if subset&(1<<(i-1)) != 0 {
				twisted[i] = invert_data(twisted[i])
			}
		}

		var got, err2 = subframe_normalize(1, twisted)
		require.NoError(t, err2)
		assert.Equal(t, want, got, "polarity games should not change the payload")
	})
}

func TestNormalizeParitySensitivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var payloads [WORDS_PER_SUBFRAME]uint32
		payloads[0] = tlm_payload(0x1234)
		for i := 1; i < WORDS_PER_SUBFRAME; i++ {
			payloads[i] = rapid.Uint32Range(0, 0xffffff).Draw(t, "payload")
		}

		var index = rapid.IntRange(1, 9).Draw(t, "index")
		var bit = rapid.IntRange(6, 29).Draw(t, "bit")

		var raw = frame_subframe(payloads)
		raw[index] ^= 1 << bit

		var _, err = subframe_normalize(1, raw)
		var perr *parity_error_t
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, index, perr.index)
		assert.NotEqual(t, perr.expected, perr.actual)
	})
}

func TestNormalizePreambleMismatch(t *testing.T) {
	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = 0x00aa55 // top byte neither 0x74 nor 0x8b
	payloads[1] = how_payload(1000, 0, 1)

	var _, err = subframe_normalize(1, frame_subframe(payloads))
	assert.ErrorIs(t, err, errPreambleMismatch)
}

func TestInterpretBadPreamble(t *testing.T) {
	var context = new_gps_context()

	var words [WORDS_PER_SUBFRAME]uint32
	words[0] = 0x123456
	words[1] = how_payload(1000, 0, 1)

	var sf, err = gpsd_interpret_subframe(context, 1, words)
	assert.Nil(t, sf)
	assert.ErrorIs(t, err, errBadPreamble)
}

func TestInterpretInvertedWord0(t *testing.T) {
	// A driver bypassing the normalizer may deliver word 0 complemented
	// within its 24 bits.  The decode must come out identical.
	var context = new_gps_context()

	var words [WORDS_PER_SUBFRAME]uint32
	words[0] = tlm_payload(0x0abc)
	words[1] = how_payload(4242, 0, 2)
	words[3] = 0x0000ff // m0 high byte
	words[4] = 0xffffff // m0 low bits

	var straight, err = gpsd_interpret_subframe(context, 7, words)
	require.NoError(t, err)

	words[0] ^= 0xffffff
	var twisted, err2 = gpsd_interpret_subframe(context, 7, words)
	require.NoError(t, err2)

	assert.Equal(t, straight, twisted)
}

func TestInterpretUnknownSubframeID(t *testing.T) {
	for _, id := range []uint32{0, 6, 7} {
		var context = new_gps_context()

		var words [WORDS_PER_SUBFRAME]uint32
		words[0] = tlm_payload(0)
		words[1] = how_payload(1000, 0, id)

		var sf, err = gpsd_interpret_subframe(context, 1, words)
		assert.Nil(t, sf)
		assert.ErrorIs(t, err, errUnknownSubframeID, "id %d", id)

		var week, leap, valid = context.snapshot()
		assert.Equal(t, uint16(0), week, "id %d must not touch the context", id)
		assert.Equal(t, LEAP_SECONDS, leap)
		assert.False(t, valid)
	}
}

func TestHeaderExtraction(t *testing.T) {
	// TOW count fills bits 7-23 of the HOW; the id sits in bits 2-4.
	var w1 = how_payload(0x1ffff, 1, 5)
	assert.Equal(t, uint32(0x1ffff), subframe_tow17(w1))
	assert.Equal(t, uint32(5), subframe_idbits(w1))
	assert.True(t, subframe_alert(w1))
	assert.True(t, subframe_antispoof(w1)) // same bit as alert, by long-standing behavior

	var w1_quiet = how_payload(12345, 0, 3)
	assert.Equal(t, uint32(12345), subframe_tow17(w1_quiet))
	assert.False(t, subframe_alert(w1_quiet))
}

func TestWeekExtraction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var week = rapid.Uint32Range(0, 0x3ff).Draw(t, "week")
		var noise = rapid.Uint32Range(0, 0x3fff).Draw(t, "noise")

		var w2 = week<<14 | noise
		assert.Equal(t, week, subframe_week(w2))
	})
}

func TestClockDecodeUpdatesWeek(t *testing.T) {
	var context = new_gps_context()

	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = tlm_payload(0)
	payloads[1] = how_payload(60000, 0, 1)
	// WN=0x2aa, L2=3, URA=0xa, health=0x2a, IODC MSBs=2
	payloads[2] = 0x2aa<<14 | 3<<10 | 0xa<<8 | 0x2a<<2 | 2
	payloads[3] = 1 << 23 // L2P flag
	payloads[6] = 0xab    // Tgd
	payloads[7] = 0x77<<16 | 0x1234
	payloads[8] = 0x05<<16 | 0xbeef
	payloads[9] = 0x123456 << 1

	var sf, err = gpsd_interpret_subframe_raw(context, 11, frame_subframe(payloads))
	require.NoError(t, err)

	var clock, ok = sf.(*subframe_clock_t)
	require.True(t, ok, "expected a clock subframe, got %T", sf)

	assert.Equal(t, uint32(11), clock.svid)
	assert.Equal(t, uint32(60000), clock.tow17)
	assert.Equal(t, uint32(0x2aa), clock.wn)
	assert.Equal(t, uint32(3), clock.l2)
	assert.Equal(t, uint32(0xa), clock.ura)
	assert.Equal(t, uint32(0x2a), clock.hlth)
	assert.Equal(t, uint32(1), clock.l2p)
	assert.Equal(t, uint32(0xab), clock.tgd)
	assert.Equal(t, uint32(0x1234), clock.toc)
	assert.Equal(t, uint32(2<<8|0x77), clock.iodc, "IODC spans words 2 and 7")
	assert.Equal(t, uint32(0x05), clock.af2)
	assert.Equal(t, uint32(0xbeef), clock.af1)
	assert.Equal(t, uint32(0x123456), clock.af0)

	var week, _, _ = context.snapshot()
	assert.Equal(t, uint16(0x2aa), week)
}

func TestEphemeris1Decode(t *testing.T) {
	var context = new_gps_context()

	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = tlm_payload(0)
	payloads[1] = how_payload(1000, 0, 2)
	payloads[2] = 0x9c<<16 | 0x4321    // IODE, Crs
	payloads[3] = 0xabcd<<8 | 0x12     // deltan, m0 high
	payloads[4] = 0x345678             // m0 low
	payloads[5] = 0x1111<<8 | 0xde     // Cuc, e high
	payloads[6] = 0xadbeef             // e low
	payloads[7] = 0x2222<<8 | 0xa1     // Cus, sqrtA high
	payloads[8] = 0x86b00b             // sqrtA low
	payloads[9] = 0x5555<<8 | 1<<7 | 0x15<<2

	var sf, err = gpsd_interpret_subframe_raw(context, 3, frame_subframe(payloads))
	require.NoError(t, err)

	var eph, ok = sf.(*subframe_eph1_t)
	require.True(t, ok, "expected ephemeris part 1, got %T", sf)

	assert.Equal(t, uint32(0x9c), eph.iode)
	assert.Equal(t, uint32(0x4321), eph.crs)
	assert.Equal(t, uint32(0xabcd), eph.deltan)
	assert.Equal(t, uint32(0x12345678), eph.m0, "m0 is 8 high bits + 24 low bits")
	assert.Equal(t, uint32(0x1111), eph.cuc)
	assert.Equal(t, uint32(0xdeadbeef), eph.e)
	assert.Equal(t, uint32(0x2222), eph.cus)
	assert.Equal(t, uint32(0xa186b00b), eph.sqrtA)
	assert.Equal(t, uint32(0x5555), eph.toe)
	assert.Equal(t, uint32(1), eph.fit)
	assert.Equal(t, uint32(0x15), eph.aodo)
}

func TestEphemeris2Decode(t *testing.T) {
	var context = new_gps_context()

	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = tlm_payload(0)
	payloads[1] = how_payload(1000, 0, 3)
	payloads[2] = 0x1234<<8 | 0xca // Cic, Omega0 high
	payloads[3] = 0xfebabe         // Omega0 low
	payloads[4] = 0x5678<<8 | 0x0f // Cis, i0 high
	payloads[5] = 0x0e1e2d         // i0 low
	payloads[6] = 0x9abc<<8 | 0x77 // Crc, omega high
	payloads[7] = 0x665544         // omega low
	payloads[8] = 0xcafe12         // Omegadot
	payloads[9] = 0x42<<16 | 0x0fff<<2

	var sf, err = gpsd_interpret_subframe_raw(context, 19, frame_subframe(payloads))
	require.NoError(t, err)

	var eph, ok = sf.(*subframe_eph2_t)
	require.True(t, ok, "expected ephemeris part 2, got %T", sf)

	assert.Equal(t, uint32(0x1234), eph.cic)
	assert.Equal(t, uint32(0xcafebabe), eph.Omega0)
	assert.Equal(t, uint32(0x5678), eph.cis)
	assert.Equal(t, uint32(0x0f0e1e2d), eph.i0)
	assert.Equal(t, uint32(0x9abc), eph.crc)
	assert.Equal(t, uint32(0x77665544), eph.omega)
	assert.Equal(t, uint32(0xcafe12), eph.Omegad)
	assert.Equal(t, uint32(0x42), eph.iode)
	assert.Equal(t, uint32(0x0fff), eph.iote)
}

func TestLeapSecondClamp(t *testing.T) {
	tests := []struct {
		name      string
		leap      uint32
		wantLeap  int
		wantValid bool
	}{
		{"below baseline is clamped", LEAP_SECONDS - 1, LEAP_SECONDS, false},
		{"baseline itself is believed", LEAP_SECONDS, LEAP_SECONDS, true},
		{"above baseline is believed", LEAP_SECONDS + 1, LEAP_SECONDS + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var context = new_gps_context()

			var words [WORDS_PER_SUBFRAME]uint32
			words[0] = tlm_payload(0)
			words[1] = how_payload(1000, 0, 4)
			words[2] = page_payload(1, 56, 0)
			words[8] = tt.leap<<16 | 100<<8 | 7
			words[9] = tt.leap << 16

			var sf, err = gpsd_interpret_subframe(context, 1, words)
			require.NoError(t, err)

			var page, ok = sf.(*subframe_page_t)
			require.True(t, ok)
			assert.Equal(t, PAGE_LEAP_SECONDS, page.variant)
			assert.Equal(t, tt.leap, page.leap, "the decode result keeps the raw value")

			var _, leap, valid = context.snapshot()
			assert.Equal(t, tt.wantLeap, leap)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}

func TestLeapSecondPageEndToEnd(t *testing.T) {
	// Raw words through the whole pipeline: subframe 4, page 56,
	// leap=18, lsf=18, WNlsf=100, DN=7.
	var build = func(leap, lsf uint32) [WORDS_PER_SUBFRAME]uint32 {
		var payloads [WORDS_PER_SUBFRAME]uint32
		payloads[0] = tlm_payload(0x22)
		payloads[1] = how_payload(86400, 0, 4)
		payloads[2] = page_payload(1, 56, 0)
		payloads[8] = leap<<16 | 100<<8 | 7
		payloads[9] = lsf << 16
		return frame_subframe(payloads)
	}

	t.Run("no change pending", func(t *testing.T) {
		var context = new_gps_context()

		var sf, err = gpsd_interpret_subframe_raw(context, 22, build(18, 18))
		require.NoError(t, err)

		var page = sf.(*subframe_page_t)
		assert.Equal(t, uint32(18), page.leap)
		assert.Equal(t, uint32(18), page.lsf)
		assert.Equal(t, uint32(100), page.wnlsf)
		assert.Equal(t, uint32(7), page.dn)

		var _, leap, valid = context.snapshot()
		assert.Equal(t, 18, leap)
		assert.True(t, valid)
		assert.Equal(t, 0, context.leap_notify, "leap == lsf means no pending change")
	})

	t.Run("change pending", func(t *testing.T) {
		var context = new_gps_context()

		var sf, err = gpsd_interpret_subframe_raw(context, 22, build(18, 19))
		require.NoError(t, err)

		var page = sf.(*subframe_page_t)
		assert.Equal(t, uint32(19), page.lsf)

		var _, leap, valid = context.snapshot()
		assert.Equal(t, 18, leap)
		assert.True(t, valid)
		assert.Equal(t, 1, context.leap_notify, "leap != lsf should signal a pending change")
	})
}

func TestSystemMessagePage(t *testing.T) {
	var context = new_gps_context()

	var text = "HELLO FROM THE CONTROL" // 22 characters, the page's full capacity
	require.Len(t, text, 22)

	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = tlm_payload(0)
	payloads[1] = how_payload(1000, 0, 4)
	payloads[2] = page_payload(1, 55, uint32(text[0])<<8|uint32(text[1]))
	for i := 0; i < 6; i++ {
		payloads[3+i] = uint32(text[2+3*i])<<16 | uint32(text[3+3*i])<<8 | uint32(text[4+3*i])
	}
	payloads[9] = uint32(text[20])<<16 | uint32(text[21])<<8

	var sf, err = gpsd_interpret_subframe_raw(context, 1, frame_subframe(payloads))
	require.NoError(t, err)

	var page, ok = sf.(*subframe_page_t)
	require.True(t, ok)
	assert.Equal(t, PAGE_SYSTEM_MESSAGE, page.variant)
	assert.Equal(t, text, page.message)
}

func TestSubframe4UndecodedPages(t *testing.T) {
	for _, pageid := range []uint32{1, 2, 13, 17, 18, 25} {
		var context = new_gps_context()

		var words [WORDS_PER_SUBFRAME]uint32
		words[0] = tlm_payload(0)
		words[1] = how_payload(1000, 0, 4)
		words[2] = page_payload(1, pageid, 0)

		var sf, err = gpsd_interpret_subframe(context, 1, words)
		require.NoError(t, err)

		var page, ok = sf.(*subframe_page_t)
		require.True(t, ok, "page %d", pageid)
		assert.Equal(t, uint32(4), page.frame)
		assert.Equal(t, pageid, page.pageid)
		assert.Equal(t, PAGE_NOT_DECODED, page.variant, "page %d is an extension point", pageid)
	}
}

func TestAlmanacDecode(t *testing.T) {
	var context = new_gps_context()

	var payloads [WORDS_PER_SUBFRAME]uint32
	payloads[0] = tlm_payload(0)
	payloads[1] = how_payload(1000, 0, 5)
	payloads[2] = page_payload(1, 9, 0x1357) // e
	payloads[3] = 0x5a<<16 | 0x2468          // toa, deltai
	payloads[4] = 0xffff00 | 0x3c            // svh in the low byte
	payloads[5] = 0xaaaaaa
	payloads[6] = 0xbbbbbb
	payloads[7] = 0xcccccc
	payloads[8] = 0xdddddd

	var sf, err = gpsd_interpret_subframe(context, 9, payloads)
	require.NoError(t, err)

	var alm, ok = sf.(*subframe_almanac_t)
	require.True(t, ok, "expected an almanac, got %T", sf)

	assert.Equal(t, uint32(9), alm.pageid)
	assert.Equal(t, uint32(1), alm.data_id)
	assert.Equal(t, uint32(0x1357), alm.e)
	assert.Equal(t, uint32(0x5a), alm.toa)
	assert.Equal(t, uint32(0x2468), alm.deltai)
	assert.Equal(t, uint32(0x3c), alm.svh)
	assert.Equal(t, uint32(0xaaaaaa), alm.sqrtA)
	assert.Equal(t, uint32(0xbbbbbb), alm.Omega0)
	assert.Equal(t, uint32(0xcccccc), alm.omega)
	assert.Equal(t, uint32(0xdddddd), alm.M0)
}

func TestAlmanacHealthSummaryPageIsNoOp(t *testing.T) {
	var context = new_gps_context()

	var words [WORDS_PER_SUBFRAME]uint32
	words[0] = tlm_payload(0)
	words[1] = how_payload(1000, 0, 5)
	words[2] = page_payload(1, 25, 0)

	var sf, err = gpsd_interpret_subframe(context, 1, words)
	require.NoError(t, err)

	var page, ok = sf.(*subframe_page_t)
	require.True(t, ok)
	assert.Equal(t, uint32(5), page.frame)
	assert.Equal(t, PAGE_NOT_DECODED, page.variant)
}

func TestContextSnapshotUnderConcurrentDecodes(t *testing.T) {
	// Several satellites finishing at once must not let a reader see
	// a half-updated context.
	var context = new_gps_context()

	var leapWords [WORDS_PER_SUBFRAME]uint32
	leapWords[0] = tlm_payload(0)
	leapWords[1] = how_payload(1000, 0, 4)
	leapWords[2] = page_payload(1, 56, 0)
	leapWords[8] = 19<<16 | 100<<8 | 7
	leapWords[9] = 19 << 16

	var clockWords [WORDS_PER_SUBFRAME]uint32
	clockWords[0] = tlm_payload(0)
	clockWords[1] = how_payload(1000, 0, 1)
	clockWords[2] = 0x2aa << 14

	var wg sync.WaitGroup
	for sv := uint32(1); sv <= 8; sv++ {
		wg.Add(1)
		go func(sv uint32) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if sv%2 == 0 {
					_, _ = gpsd_interpret_subframe(context, sv, leapWords)
				} else {
					_, _ = gpsd_interpret_subframe(context, sv, clockWords)
				}
				var _, leap, valid = context.snapshot()
				if valid {
					assert.GreaterOrEqual(t, leap, LEAP_SECONDS)
				}
			}
		}(sv)
	}
	wg.Wait()

	var week, leap, valid = context.snapshot()
	assert.Equal(t, uint16(0x2aa), week)
	assert.Equal(t, 19, leap)
	assert.True(t, valid)
}
