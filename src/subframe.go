package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Interpret satellite subframe data.
 *
 * Description:	GPS satellites broadcast a navigation message at 50
 *		bits per second, organized as subframes of ten 30-bit
 *		words.  A description of how to decode the bits is at
 *		<http://home-2.worldonline.nl/~samsvl/nav2eu.htm>;
 *		the authoritative reference is IS-GPS-200.
 *
 *		Two entry points:
 *
 *		gpsd_interpret_subframe_raw - for drivers that hand us
 *			raw words complete with parity and possible
 *			polarity inversion.  Validates and strips the
 *			transport framing, then interprets.
 *
 *		gpsd_interpret_subframe - for drivers whose chipset
 *			already delivers clean 24-bit words (inverted
 *			word 0 is still tolerated).
 *
 *		We're mostly looking for subframe 4 page 56, the leap
 *		second correction; the week number from subframe 1
 *		matters too.  Everything else is decoded into a value
 *		for the caller and otherwise left alone.
 *
 *		Decoded fields are the raw broadcast integers: no
 *		sign extension and no IS-GPS-200 scale factors.  That
 *		interpretation belongs to the ephemeris assembly
 *		layer, not here.
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"sync"
)

/*
 * Shared per-constellation navigation state.  One per receiver
 * session, passed into every decode.  Multiple satellites' subframes
 * may finish decoding in close succession, so the leap second trio
 * and the week number are guarded together; snapshot() is the only
 * way consumers should read them.
 */

type gps_context_t struct {
	mu sync.Mutex

	gps_week          uint16 /* 10-bit week from subframe 1, no rollover correction */
	leap_seconds      int
	leap_second_valid bool

	leap_notify int /* count of pending leap-second-change signals seen */
}

func new_gps_context() *gps_context_t {
	return &gps_context_t{leap_seconds: LEAP_SECONDS}
}

/*-------------------------------------------------------------------
 *
 * Name:	snapshot
 *
 * Purpose:	Read the week number and leap second state as one
 *		consistent unit.
 *
 * Returns:	(gps_week, leap_seconds, leap_second_valid)
 *
 *--------------------------------------------------------------------*/

func (context *gps_context_t) snapshot() (uint16, int, bool) {
	context.mu.Lock()
	defer context.mu.Unlock()

	return context.gps_week, context.leap_seconds, context.leap_second_valid
}

/*
 * Rejection reasons.  None of these invalidate the context or any
 * other in-flight decode; the satellite will send the same subframe
 * again in a few seconds.
 */

var errPreambleMismatch = errors.New("subframe preamble matches neither sentinel nor its complement")
var errBadPreamble = errors.New("bad preamble on parity-stripped subframe")
var errUnknownSubframeID = errors.New("unknown subframe id")

type parity_error_t struct {
	index    int    /* which word, 1-9 */
	expected uint32 /* recomputed over the data bits */
	actual   uint32 /* the stored low 6 bits */
}

func (e *parity_error_t) Error() string {
	return fmt.Sprintf("parity fail words[%d] 0x%02x != 0x%02x", e.index, e.expected, e.actual)
}

/*
 * Decoded subframe values.  One variant per subframe kind; subframes
 * 4 and 5 multiplex pages, so their variant carries a page tag.  A
 * value owns all its fields - nothing points back into the word
 * buffer.
 */

type subframe_t interface {
	subframe_id() uint32
	fmt.Stringer
}

/* Common HOW-derived fields carried by every variant. */
type subframe_header_t struct {
	svid      uint32
	tow17     uint32 /* 17-bit time of week count */
	alert     bool
	antispoof bool
}

/* Subframe 1: clock parameters for the transmitting SV. */
type subframe_clock_t struct {
	subframe_header_t

	wn   uint32 /* 10-bit week number, uncorrected */
	iodc uint32 /* 10 bits: 2 MSBs from word 2, 8 LSBs from word 7 */
	l2   uint32 /* codes on L2 channel */
	ura  uint32 /* user range accuracy index */
	hlth uint32 /* SV health */
	l2p  uint32 /* L2 P data flag */
	tgd  uint32 /* group delay */
	toc  uint32 /* clock data reference time */
	af2  uint32 /* clock drift rate */
	af1  uint32 /* clock drift */
	af0  uint32 /* clock bias */
}

/* Subframe 2: first half of the ephemeris. */
type subframe_eph1_t struct {
	subframe_header_t

	iode   uint32
	crs    uint32 /* orbit radius correction, sine */
	deltan uint32 /* mean motion difference */
	m0     uint32 /* mean anomaly, 8+24 bits */
	cuc    uint32
	e      uint32 /* eccentricity, 8+24 bits */
	cus    uint32
	sqrtA  uint32 /* sqrt of semi-major axis, 8+24 bits */
	toe    uint32 /* ephemeris reference time */
	fit    uint32 /* fit interval flag */
	aodo   uint32 /* age of data offset */
}

/* Subframe 3: second half of the ephemeris. */
type subframe_eph2_t struct {
	subframe_header_t

	cic    uint32
	Omega0 uint32 /* longitude of ascending node, 8+24 bits */
	cis    uint32
	i0     uint32 /* inclination angle, 8+24 bits */
	crc    uint32 /* orbit radius correction, cosine */
	omega  uint32 /* argument of perigee, 8+24 bits */
	Omegad uint32 /* rate of right ascension */
	iode   uint32
	iote   uint32
}

/* What, if anything, we made of a subframe 4/5 page. */
type page_variant_e int

const (
	PAGE_NOT_DECODED page_variant_e = iota /* reserved or not yet decoded; extension point */
	PAGE_SYSTEM_MESSAGE
	PAGE_LEAP_SECONDS
)

/* Subframe 4 pages, and the subframe 5 pages we don't decode. */
type subframe_page_t struct {
	subframe_header_t

	frame   uint32 /* 4 or 5 */
	pageid  uint32
	data_id uint32
	variant page_variant_e

	/* PAGE_SYSTEM_MESSAGE */
	message string

	/* PAGE_LEAP_SECONDS.  Raw broadcast values, unclamped. */
	leap  uint32 /* current leap seconds */
	lsf   uint32 /* leap seconds, future */
	wnlsf uint32 /* week number of the change; 8 bits, unlike the 10-bit WN */
	dn    uint32 /* day number of the change */
}

/* Subframe 5 pages 1-24: almanac for SV 1 through 24. */
type subframe_almanac_t struct {
	subframe_header_t

	pageid  uint32
	data_id uint32

	e      uint32 /* eccentricity */
	toa    uint32 /* almanac reference time */
	deltai uint32 /* inclination offset from 0.30 semicircles */
	svh    uint32 /* SV health */
	sqrtA  uint32
	Omega0 uint32
	omega  uint32
	M0     uint32
}

func (s *subframe_clock_t) subframe_id() uint32   { return 1 }
func (s *subframe_eph1_t) subframe_id() uint32    { return 2 }
func (s *subframe_eph2_t) subframe_id() uint32    { return 3 }
func (s *subframe_page_t) subframe_id() uint32    { return s.frame }
func (s *subframe_almanac_t) subframe_id() uint32 { return 5 }

func (s *subframe_clock_t) String() string {
	return fmt.Sprintf("SF:1 SV:%2d WN:%4d IODC:%4d L2:%d ura:%d hlth:%d L2P:%d Tgd:%d toc:%d af2:%3d af1:%5d af0:%7d",
		s.svid, s.wn, s.iodc, s.l2, s.ura, s.hlth, s.l2p, s.tgd, s.toc, s.af2, s.af1, s.af0)
}

func (s *subframe_eph1_t) String() string {
	return fmt.Sprintf("SF:2 SV:%2d IODE:%d Crs:%d deltan:%d m0:%d Cuc:%d e:%d Cus:%d sqrtA:%d toe:%d FIT:%d AODO:%d",
		s.svid, s.iode, s.crs, s.deltan, s.m0, s.cuc, s.e, s.cus, s.sqrtA, s.toe, s.fit, s.aodo)
}

func (s *subframe_eph2_t) String() string {
	return fmt.Sprintf("SF:3 SV:%2d IODE:%3d IOTE:%d Cic:%d Omega0:%d Cis:%d i0:%d Crc:%d omega:%d Omegad:%d",
		s.svid, s.iode, s.iote, s.cic, s.Omega0, s.cis, s.i0, s.crc, s.omega, s.Omegad)
}

func (s *subframe_page_t) String() string {
	switch s.variant {
	case PAGE_SYSTEM_MESSAGE:
		return fmt.Sprintf("SF:%d-%d SV:%2d system message %q", s.frame, s.pageid, s.svid, s.message)
	case PAGE_LEAP_SECONDS:
		return fmt.Sprintf("SF:%d-%d SV:%2d leap:%d lsf:%d WNlsf:%d DN:%d", s.frame, s.pageid, s.svid, s.leap, s.lsf, s.wnlsf, s.dn)
	default:
		return fmt.Sprintf("SF:%d-%d SV:%2d data_id %d (not decoded)", s.frame, s.pageid, s.svid, s.data_id)
	}
}

func (s *subframe_almanac_t) String() string {
	return fmt.Sprintf("SF:5 SV:%2d data_id %d e:%d svh:%d toa:%d deltai:%d sqrtA:%d Omega0:%d omega:%d M0:%d",
		s.svid, s.data_id, s.e, s.svh, s.toa, s.deltai, s.sqrtA, s.Omega0, s.omega, s.M0)
}

/*
 * Named extraction helpers for the header fields.  Each one is a
 * single mask-and-shift so it can be checked against literal bit
 * patterns in isolation.
 */

/* Preamble as seen in a parity-stripped 24-bit word 0. */
func subframe_preamble(w0 uint32) uint32 { return (w0 >> 16) & 0xff }

/* The subframe ID and friends live in the Hand-Over Word (word 1). */
func subframe_tow17(w1 uint32) uint32 { return (w1 >> 7) & 0x01ffff }
func subframe_idbits(w1 uint32) uint32 { return (w1 >> 2) & 0x07 }
func subframe_alert(w1 uint32) bool { return (w1>>6)&0x01 != 0 }

/* Anti-spoof reads the same bit as alert.  That is how the decoder
 * has always behaved; whether the ICD genuinely overlaps them in this
 * revision or this is an ancient copy-paste is unresolved, so the
 * behavior is preserved rather than guessed at. */
func subframe_antispoof(w1 uint32) bool { return (w1>>6)&0x01 != 0 }

/* Only meaningful in subframes 4 and 5. */
func subframe_pageid(w2 uint32) uint32 { return (w2 >> 16) & 0x3f }
func subframe_dataid(w2 uint32) uint32 { return (w2 >> 22) & 0x03 }

/* 10-bit week number, subframe 1 word 2.  Not corrected for epoch
 * rollover; that is the time-correction layer's problem. */
func subframe_week(w2 uint32) uint32 { return (w2 >> 14) & 0x03ff }

/*-------------------------------------------------------------------
 *
 * Name:	subframe_normalize
 *
 * Purpose:	Validate and strip the transport framing from ten
 *		raw 30-bit words.
 *
 * Inputs:	svid	- Satellite the burst came from; logging only.
 *		words	- Ten raw words, right justified.  Bits 0-5
 *			  parity, 6-29 data.  Word 0 carries the
 *			  preamble; words 1-9 may have D30* in bit 30
 *			  to say the data bits arrived complemented.
 *
 * Returns:	Ten 24-bit data words, or a rejection.
 *
 *		Since D29* / D30* are not available for word 0, it is
 *		checked against the known preamble instead, which
 *		also settles whether the word is inverted.  A word 0
 *		that matches neither form is very common - satellites
 *		drop lock all the time - so that rejection is quiet.
 *
 *--------------------------------------------------------------------*/

func subframe_normalize(svid uint32, words [WORDS_PER_SUBFRAME]uint32) ([WORDS_PER_SUBFRAME]uint32, error) {
	gpsd_report(LOG_IO, "50B: subframe_normalize (%d): %08x %08x %08x %08x %08x %08x %08x %08x %08x %08x",
		svid, words[0], words[1], words[2], words[3], words[4],
		words[5], words[6], words[7], words[8], words[9])

	var preamble = (words[0] >> 22) & 0xff
	if preamble == PREAMBLE_INVERTED {
		words[0] ^= W_DATA_MASK /* invert */
	} else if preamble != PREAMBLE_PATTERN {
		/* strangely this is very common, so don't log it loudly */
		gpsd_report(LOG_IO, "50B: subframe_normalize bad preamble 0x%02x", preamble)
		return words, errPreambleMismatch
	}
	words[0] = (words[0] >> 6) & 0xffffff

	for i := 1; i < WORDS_PER_SUBFRAME; i++ {
		/* D30* says invert */
		if words[i]&W_INVERT_BIT != 0 {
			/* inverted data, invert it back */
			words[i] ^= W_DATA_MASK
		}

		var parity = isgps_parity(words[i])
		if parity != words[i]&W_PARITY_MASK {
			gpsd_report(LOG_IO, "50B: subframe_normalize parity fail words[%d] 0x%02x != 0x%02x",
				i, parity, words[i]&W_PARITY_MASK)
			return words, &parity_error_t{index: i, expected: parity, actual: words[i] & W_PARITY_MASK}
		}
		words[i] = (words[i] >> 6) & 0xffffff
	}

	return words, nil
}

/*-------------------------------------------------------------------
 *
 * Name:	gpsd_interpret_subframe_raw
 *
 * Purpose:	Decode one subframe from raw transport words:
 *		normalize, then interpret.
 *
 *--------------------------------------------------------------------*/

func gpsd_interpret_subframe_raw(context *gps_context_t, svid uint32, words [WORDS_PER_SUBFRAME]uint32) (subframe_t, error) {
	var normalized, err = subframe_normalize(svid, words)
	if err != nil {
		return nil, err
	}
	return gpsd_interpret_subframe(context, svid, normalized)
}

/*-------------------------------------------------------------------
 *
 * Name:	gpsd_interpret_subframe
 *
 * Purpose:	Decode one subframe of ten parity-stripped 24-bit
 *		words, dispatching on the subframe ID, and for
 *		subframes 4 and 5 on the page ID.
 *
 * Inputs:	context	- Shared navigation state for this
 *			  constellation.  Updated for subframe 1
 *			  (week number) and subframe 4 page 56
 *			  (leap seconds); never otherwise.
 *		svid	- Satellite the subframe came from.
 *		words	- Ten 24-bit words, parity and polarity
 *			  already resolved (inverted word 0 is OK).
 *
 * Returns:	The decoded subframe value, or a rejection.
 *
 * Description:	This may be called directly by a driver whose chipset
 *		emits acceptable data, bypassing the normalizer, so
 *		it re-checks the preamble itself.  Unlike the raw
 *		path, a bad preamble here means an upstream framing
 *		bug, and is logged as such.
 *
 *--------------------------------------------------------------------*/

func gpsd_interpret_subframe(context *gps_context_t, svid uint32, words [WORDS_PER_SUBFRAME]uint32) (subframe_t, error) {
	gpsd_report(LOG_IO, "50B: gpsd_interpret_subframe: (%d) %06x %06x %06x %06x %06x %06x %06x %06x %06x %06x",
		svid, words[0], words[1], words[2], words[3], words[4],
		words[5], words[6], words[7], words[8], words[9])

	var preamble = subframe_preamble(words[0])
	if preamble == PREAMBLE_INVERTED {
		preamble ^= 0xff
		words[0] ^= 0xffffff
	}
	if preamble != PREAMBLE_PATTERN {
		gpsd_report(LOG_WARN, "50B: gpsd_interpret_subframe bad preamble: 0x%02x header 0x%06x",
			preamble, words[0])
		return nil, errBadPreamble
	}

	var header = subframe_header_t{
		svid:      svid,
		tow17:     subframe_tow17(words[1]),
		alert:     subframe_alert(words[1]),
		antispoof: subframe_antispoof(words[1]),
	}
	var id = subframe_idbits(words[1])

	gpsd_report(LOG_PROG, "50B: SF:%d SV:%2d TOW17:%6d Alert:%t AS:%t",
		id, svid, header.tow17, header.alert, header.antispoof)

	var pageid = subframe_pageid(words[2])
	var data_id = subframe_dataid(words[2])

	switch id {
	case 1:
		return subframe_decode_clock(context, header, words), nil
	case 2:
		return subframe_decode_eph1(header, words), nil
	case 3:
		return subframe_decode_eph2(header, words), nil
	case 4:
		return subframe_decode_page(context, header, pageid, data_id, words), nil
	case 5:
		return subframe_decode_almanac(header, pageid, data_id, words), nil
	default:
		/* unknown/illegal subframe; no state is touched */
		gpsd_report(LOG_PROG, "50B: SF:%d SV:%2d not a valid subframe id", id, svid)
		return nil, errUnknownSubframeID
	}
}

/* Subframe 1: clock parameters, and the only place the week number
 * is broadcast. */
func subframe_decode_clock(context *gps_context_t, header subframe_header_t, words [WORDS_PER_SUBFRAME]uint32) *subframe_clock_t {
	var sf = &subframe_clock_t{
		subframe_header_t: header,

		wn:   subframe_week(words[2]),
		l2:   (words[2] >> 10) & 0x000003,
		ura:  (words[2] >> 8) & 0x00000f,
		hlth: (words[2] >> 2) & 0x00003f,
		l2p:  (words[3] >> 23) & 0x000001,
		tgd:  words[6] & 0x0000ff,
		toc:  words[7] & 0x00ffff,
		af2:  (words[8] >> 16) & 0x0000ff,
		af1:  words[8] & 0x00ffff,
		af0:  (words[9] >> 1) & 0x3fffff,
	}
	/* IODC: 2 MSBs in word 2, 8 LSBs in word 7. */
	sf.iodc = (words[2]&0x000003)<<8 | (words[7]>>16)&0x00ff

	context.mu.Lock()
	context.gps_week = uint16(sf.wn)
	context.mu.Unlock()

	gpsd_report(LOG_PROG, "50B: %s", sf)
	return sf
}

/* Subframe 2: ephemeris, first installment.  The three 32-bit fields
 * are built from an 8-bit high part and a 24-bit low part in the
 * following word. */
func subframe_decode_eph1(header subframe_header_t, words [WORDS_PER_SUBFRAME]uint32) *subframe_eph1_t {
	var sf = &subframe_eph1_t{
		subframe_header_t: header,

		iode:   (words[2] >> 16) & 0x0000ff,
		crs:    words[2] & 0x00ffff,
		deltan: (words[3] >> 8) & 0x00ffff,
		m0:     (words[3]&0x0000ff)<<24 | words[4]&0xffffff,
		cuc:    (words[5] >> 8) & 0x00ffff,
		e:      (words[5]&0x0000ff)<<24 | words[6]&0xffffff,
		cus:    (words[7] >> 8) & 0x00ffff,
		sqrtA:  (words[7]&0x0000ff)<<24 | words[8]&0xffffff,
		toe:    (words[9] >> 8) & 0x00ffff,
		fit:    (words[9] >> 7) & 0x000001,
		aodo:   (words[9] >> 2) & 0x00001f,
	}
	gpsd_report(LOG_PROG, "50B: %s", sf)
	return sf
}

/* Subframe 3: ephemeris, second installment.  No cross-check against
 * subframe 2's IODE is done here; ephemeris consistency is the
 * assembler's job. */
func subframe_decode_eph2(header subframe_header_t, words [WORDS_PER_SUBFRAME]uint32) *subframe_eph2_t {
	var sf = &subframe_eph2_t{
		subframe_header_t: header,

		cic:    (words[2] >> 8) & 0x00ffff,
		Omega0: (words[2]&0x0000ff)<<24 | words[3]&0xffffff,
		cis:    (words[4] >> 8) & 0x00ffff,
		i0:     (words[4]&0x0000ff)<<24 | words[5]&0xffffff,
		crc:    (words[6] >> 8) & 0x00ffff,
		omega:  (words[6]&0x0000ff)<<24 | words[7]&0xffffff,
		Omegad: words[8] & 0xffffff,
		iode:   (words[9] >> 16) & 0x0000ff,
		iote:   (words[9] & 0x003fff) >> 2,
	}
	gpsd_report(LOG_PROG, "50B: %s", sf)
	return sf
}

/* Subframe 4: a 25-page multiplex.  Consult the latest revision of
 * IS-GPS-200 for the mapping between magic SVIDs and pages. */
func subframe_decode_page(context *gps_context_t, header subframe_header_t, pageid uint32, data_id uint32, words [WORDS_PER_SUBFRAME]uint32) *subframe_page_t {
	var sf = &subframe_page_t{
		subframe_header_t: header,

		frame:   4,
		pageid:  pageid,
		data_id: data_id,
		variant: PAGE_NOT_DECODED,
	}

	gpsd_report(LOG_PROG, "50B: SF:4-%d data_id %d", pageid, data_id)

	switch pageid {
	case 1, 6, 11, 12, 14, 15, 16, 19, 20, 21, 22, 23, 24:
		/* reserved pages */

	case 2, 3, 4, 5, 7, 8, 9, 10:
		/* almanac data for SV 25 through 32 respectively */

	case 13:
		/* NMCT */

	case 17:
		/* special messages */

	case 18:
		/* ionospheric and UTC data */

	case 25:
		/* A-S flags/SV configurations for 32 SVs,
		 * plus SV health for SV 25 through 32 */

	case 55:
		/* The public IS-GPS-200 numbering has no page 55; this is
		 * the system message page under the id the decoder has
		 * always used, kept until checked against the ICD revision
		 * actually in effect. */
		sf.variant = PAGE_SYSTEM_MESSAGE
		sf.message = subframe_system_message(words)
		gpsd_report(LOG_INF, "50B: gps system message is %s", sf.message)

	case 56:
		sf.variant = PAGE_LEAP_SECONDS
		sf.leap = (words[8] >> 16) & 0xff /* current leap seconds */
		/* careful: WN is 10 bits, but WNlsf is only 8 */
		sf.wnlsf = (words[8] >> 8) & 0xff /* week number of the change */
		sf.dn = words[8] & 0xff           /* day number of the change */
		sf.lsf = (words[9] >> 16) & 0xff  /* leap seconds, future */

		/*
		 * Some chipsets pass the 50bps stream along even when
		 * parity fails, so corrupt values can reach here even
		 * though framing succeeded.  A leap second count below
		 * the compiled floor is never believable.
		 */
		context.mu.Lock()
		if sf.leap < LEAP_SECONDS {
			gpsd_report(LOG_ERROR, "50B: invalid leap_seconds: %d", sf.leap)
			context.leap_seconds = LEAP_SECONDS
			context.leap_second_valid = false
		} else {
			gpsd_report(LOG_INF, "50B: leap-seconds: %d, lsf: %d, WNlsf: %d, DN: %d",
				sf.leap, sf.lsf, sf.wnlsf, sf.dn)
			context.leap_seconds = int(sf.leap)
			context.leap_second_valid = true
			if sf.leap != sf.lsf {
				gpsd_report(LOG_PROG, "50B: leap-second change coming")
				context.leap_notify++
			}
		}
		context.mu.Unlock()

	default:
		/* no op */
	}

	return sf
}

/* The page-55 message text: 16 bits of word 2, the 24 MSBs of words
 * 3 through 8, plus the 16 MSBs of word 9.  Parity is already
 * stripped and the data byte-aligned, so the characters fall
 * straight out. */
func subframe_system_message(words [WORDS_PER_SUBFRAME]uint32) string {
	var msg = make([]byte, 0, 22)

	msg = append(msg, byte(words[2]>>8), byte(words[2]))
	for i := 3; i <= 8; i++ {
		msg = append(msg, byte(words[i]>>16), byte(words[i]>>8), byte(words[i]))
	}
	msg = append(msg, byte(words[9]>>16), byte(words[9]>>8))

	return string(msg)
}

/* Subframe 5.  Pages 1 through 24 are almanac data for SV 1 through
 * 24.  Page 25 (SV health summary, almanac reference time and week)
 * is not decoded here; it comes back as a not-decoded page value. */
func subframe_decode_almanac(header subframe_header_t, pageid uint32, data_id uint32, words [WORDS_PER_SUBFRAME]uint32) subframe_t {
	if pageid >= 25 {
		gpsd_report(LOG_PROG, "50B: SF:5-%d data_id %d", pageid, data_id)
		return &subframe_page_t{
			subframe_header_t: header,

			frame:   5,
			pageid:  pageid,
			data_id: data_id,
			variant: PAGE_NOT_DECODED,
		}
	}

	var sf = &subframe_almanac_t{
		subframe_header_t: header,

		pageid:  pageid,
		data_id: data_id,
		e:       words[2] & 0x00ffff,
		toa:     (words[3] >> 16) & 0x0000ff,
		deltai:  words[3] & 0x00ffff,
		svh:     words[4] & 0x0000ff,
		sqrtA:   words[5] & 0xffffff,
		Omega0:  words[6] & 0xffffff,
		omega:   words[7] & 0xffffff,
		M0:      words[8] & 0xffffff,
	}
	gpsd_report(LOG_PROG, "50B: %s", sf)
	return sf
}
