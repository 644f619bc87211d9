package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	IS-GPS-200 navigation message word parity.
 *
 * Description:	Each 30-bit transport word carries 24 data bits
 *		followed by 6 parity bits, emitted MSB first and
 *		right justified.  The parity equations are XOR taps
 *		over the data bits (IS-GPS-200 table 20-XIV); the tap
 *		masks below are the standard ones, restricted here to
 *		the data region so that polarity correction - which
 *		complements only bits 6-29 - round-trips cleanly.
 *
 *------------------------------------------------------------------*/

import "math/bits"

const (
	WORDS_PER_SUBFRAME = 10 /* a subframe is always ten 30-bit words */

	PREAMBLE_PATTERN  = 0x74 /* TLM sync pattern, bits 22-29 of word 0 */
	PREAMBLE_INVERTED = 0x8b /* ...and its bit-complement */

	W_DATA_MASK   = 0x3fffffc0 /* the 24 data bits of a 30-bit word */
	W_PARITY_MASK = 0x0000003f /* the 6 parity bits */
	W_INVERT_BIT  = 0x40000000 /* D30*, set when the data arrived complemented */
)

/* One tap mask per parity bit, D25 through D30. */
var isgps_parity_taps = [6]uint32{
	0xbb1f3480,
	0x5d8f9a40,
	0xaec7cd00,
	0x5763e680,
	0x6bb1f340,
	0x8b7a89c0,
}

/*-------------------------------------------------------------------
 *
 * Name:	isgps_parity
 *
 * Purpose:	Compute the 6 parity bits of a 30-bit transport word.
 *
 * Inputs:	word	- Right-justified raw word.  Only the data
 *			  region (bits 6-29) participates; the stored
 *			  parity bits and anything above bit 29 are
 *			  ignored.
 *
 * Returns:	D25..D30, MSB first, right justified.
 *
 *--------------------------------------------------------------------*/

func isgps_parity(word uint32) uint32 {
	var data = word & W_DATA_MASK

	var parity uint32
	for _, taps := range isgps_parity_taps {
		parity = parity<<1 | uint32(bits.OnesCount32(data&taps)&1)
	}
	return parity
}

/*-------------------------------------------------------------------
 *
 * Name:	isgps_frame_word
 *
 * Purpose:	Frame a 24-bit payload as a 30-bit transport word
 *		with correct parity.  The inverse of what the
 *		normalizer does; used by encoders and tests.
 *
 *--------------------------------------------------------------------*/

func isgps_frame_word(data uint32) uint32 {
	var word = (data & 0xffffff) << 6
	return word | isgps_parity(word)
}
