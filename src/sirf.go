package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Driver for the SiRF binary protocol.
 *
 * Description:	Frame layout:
 *
 *		    0xA0 0xA2  len(2, BE)  payload  cksum(2, BE)  0xB0 0xB3
 *
 *		The length is 15 bits; the checksum is the byte sum of
 *		the payload masked to 15 bits.  The first payload byte
 *		is the message ID.
 *
 *		MID 8 is the 50bps subframe report: channel, svid, then
 *		ten big-endian 32-bit words.  Unlike u-blox, SiRF hands
 *		over the words raw, parity bits, polarity inversion and
 *		all, so they go through the normalizing entry point.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"io"
)

const (
	SIRF_START_1 = 0xa0
	SIRF_START_2 = 0xa2
	SIRF_END_1   = 0xb0
	SIRF_END_2   = 0xb3

	SIRF_MID_SUBFRAME  = 0x08
	SIRF_MAX_PAYLOAD   = 0x7fff
	SIRF_SFRB_PAYLOAD  = 43 /* mid + chn + svid + 10 words */
	SIRF_CHECKSUM_MASK = 0x7fff
)

type sirf_driver_t struct {
	reader  *bufio.Reader
	context *gps_context_t
}

func sirf_new_driver(r io.Reader, context *gps_context_t) *sirf_driver_t {
	return &sirf_driver_t{
		reader:  bufio.NewReader(r),
		context: context,
	}
}

func sirf_checksum(payload []byte) uint16 {
	var sum uint16
	for _, b := range payload {
		sum += uint16(b)
	}
	return sum & SIRF_CHECKSUM_MASK
}

/*-------------------------------------------------------------------
 *
 * Name:	sirf_read_frame
 *
 * Purpose:	Scan the stream for the next well-formed SiRF frame.
 *
 * Returns:	The payload (message ID first), or a stream error.
 *		Frames with a bad checksum or trailer are dropped.
 *
 *--------------------------------------------------------------------*/

func (d *sirf_driver_t) sirf_read_frame() ([]byte, error) {
	for {
		var b, err = d.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != SIRF_START_1 {
			continue
		}
		if b, err = d.reader.ReadByte(); err != nil {
			return nil, err
		}
		if b != SIRF_START_2 {
			continue
		}

		var lenbuf [2]byte
		if _, err = io.ReadFull(d.reader, lenbuf[:]); err != nil {
			return nil, err
		}
		var length = int(binary.BigEndian.Uint16(lenbuf[:]))
		if length > SIRF_MAX_PAYLOAD {
			gpsd_report(LOG_IO, "sirf: implausible length %d, resyncing", length)
			continue
		}

		var payload = make([]byte, length)
		if _, err = io.ReadFull(d.reader, payload); err != nil {
			return nil, err
		}
		var trailer [4]byte
		if _, err = io.ReadFull(d.reader, trailer[:]); err != nil {
			return nil, err
		}

		if trailer[2] != SIRF_END_1 || trailer[3] != SIRF_END_2 {
			gpsd_report(LOG_IO, "sirf: bad frame trailer")
			continue
		}
		var sum = binary.BigEndian.Uint16(trailer[:2])
		if sum != sirf_checksum(payload) {
			gpsd_report(LOG_IO, "sirf: checksum error on mid 0x%02x", payload[0])
			continue
		}

		return payload, nil
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	sirf_next_subframe
 *
 * Purpose:	Read frames until a MID 8 subframe report arrives and
 *		survives transport validation, then decode it.
 *
 * Returns:	The decoded subframe, or an error.  io.EOF means the
 *		stream ended cleanly.
 *
 *--------------------------------------------------------------------*/

func (d *sirf_driver_t) sirf_next_subframe() (subframe_t, error) {
	for {
		var payload, err = d.sirf_read_frame()
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 || payload[0] != SIRF_MID_SUBFRAME {
			if len(payload) > 0 {
				gpsd_report(LOG_IO, "sirf: skipping mid 0x%02x", payload[0])
			}
			continue
		}
		if len(payload) != SIRF_SFRB_PAYLOAD {
			gpsd_report(LOG_WARN, "sirf: MID 8 length %d, want %d",
				len(payload), SIRF_SFRB_PAYLOAD)
			continue
		}

		var svid = uint32(payload[2])
		var words [WORDS_PER_SUBFRAME]uint32
		for i := range words {
			words[i] = binary.BigEndian.Uint32(payload[3+4*i:])
		}

		var subframe, decodeErr = gpsd_interpret_subframe_raw(d.context, svid, words)
		if decodeErr != nil {
			/* routine on a weak signal; the next repeat will get through */
			gpsd_report(LOG_IO, "sirf: svid %d: %s", svid, decodeErr)
			continue
		}
		return subframe, nil
	}
}

/* sirf_frame_subframe builds a MID 8 frame around raw 30-bit words,
 * for recording and replay. */
func sirf_frame_subframe(chn uint8, svid uint8, words [WORDS_PER_SUBFRAME]uint32) []byte {
	var payload = make([]byte, SIRF_SFRB_PAYLOAD)
	payload[0] = SIRF_MID_SUBFRAME
	payload[1] = chn
	payload[2] = svid
	for i, word := range words {
		binary.BigEndian.PutUint32(payload[3+4*i:], word)
	}

	var frame = make([]byte, 0, 8+len(payload))
	frame = append(frame, SIRF_START_1, SIRF_START_2,
		uint8(len(payload)>>8), uint8(len(payload)))
	frame = append(frame, payload...)
	var sum = sirf_checksum(payload)
	return append(frame, uint8(sum>>8), uint8(sum), SIRF_END_1, SIRF_END_2)
}
