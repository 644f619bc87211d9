package gopsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParityKnownValues(t *testing.T) {
	// All-zero data has all-zero parity.
	assert.Equal(t, uint32(0x00), isgps_parity(0))

	// All 24 data bits set.  The IS-GPS-200 equations have
	// 14/14/14/14/15/13 data taps, so only D29 and D30 come out odd.
	assert.Equal(t, uint32(0x03), isgps_parity(W_DATA_MASK))

	// d24 alone (bit 6) participates in D26, D29 and D30.
	assert.Equal(t, uint32(0x13), isgps_parity(0x40))
}

func TestParityTapCoverage(t *testing.T) {
	// Every data bit must participate in at least one equation,
	// otherwise single-bit errors in that position would be invisible.
	var covered uint32
	for _, taps := range isgps_parity_taps {
		covered |= taps
	}
	assert.Equal(t, uint32(W_DATA_MASK), covered&W_DATA_MASK)
}

func TestParityIgnoresNonDataBits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var word = rapid.Uint32().Draw(t, "word")

		// Stored parity bits and the top two bits must not affect the result.
		assert.Equal(t, isgps_parity(word&W_DATA_MASK), isgps_parity(word))
		assert.Equal(t, isgps_parity(word), isgps_parity(word|W_PARITY_MASK|0xc0000000))
	})
}

func TestFrameWordRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.Uint32Range(0, 0xffffff).Draw(t, "data")

		var word = isgps_frame_word(data)
		assert.Equal(t, data, (word>>6)&0xffffff, "payload should survive framing")
		assert.Equal(t, word&W_PARITY_MASK, isgps_parity(word), "framed word should check")
	})
}

func TestParitySingleBitSensitivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.Uint32Range(0, 0xffffff).Draw(t, "data")
		var bit = rapid.IntRange(6, 29).Draw(t, "bit")

		var word = isgps_frame_word(data)
		var flipped = word ^ (1 << bit)
		assert.NotEqual(t, flipped&W_PARITY_MASK, isgps_parity(flipped),
			"flipping bit %d went undetected", bit)
	})
}
