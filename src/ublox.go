package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Driver for the u-blox binary (UBX) protocol.
 *
 * Description:	Only the message we care about is handled: RXM-SFRB,
 *		the 50bps navigation subframe buffer.  Everything else
 *		on the wire is skipped after a checksum check.
 *
 *		Frame layout:
 *
 *		    0xB5 0x62  class  id  len(2, LE)  payload  ck_a ck_b
 *
 *		The checksum is the usual 8-bit Fletcher over class
 *		through the end of the payload.
 *
 *		RXM-SFRB payload (42 bytes): channel, svid, then ten
 *		little-endian 32-bit words.  The receiver has already
 *		stripped parity and undone polarity inversion, so the
 *		low 24 bits of each word go straight to the subframe
 *		interpreter.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	UBX_SYNC_1 = 0xb5
	UBX_SYNC_2 = 0x62

	UBX_CLASS_RXM    = 0x02
	UBX_RXM_SFRB     = 0x11
	UBX_MAX_PAYLOAD  = 1024
	UBX_SFRB_PAYLOAD = 42
)

type ubx_frame_t struct {
	class   uint8
	id      uint8
	payload []byte
}

type ubx_driver_t struct {
	reader  *bufio.Reader
	context *gps_context_t
}

func ubx_new_driver(r io.Reader, context *gps_context_t) *ubx_driver_t {
	return &ubx_driver_t{
		reader:  bufio.NewReader(r),
		context: context,
	}
}

/* 8-bit Fletcher, seeded with class, id and length bytes. */
func ubx_checksum(class uint8, id uint8, payload []byte) (uint8, uint8) {
	var cka, ckb uint8

	var add = func(b uint8) {
		cka += b
		ckb += cka
	}

	add(class)
	add(id)
	add(uint8(len(payload)))
	add(uint8(len(payload) >> 8))
	for _, b := range payload {
		add(b)
	}
	return cka, ckb
}

/*-------------------------------------------------------------------
 *
 * Name:	ubx_read_frame
 *
 * Purpose:	Scan the stream for the next well-formed UBX frame.
 *
 * Returns:	The frame, or the stream error that ended the scan.
 *		Checksum failures are not errors; the frame is dropped
 *		and the scan resumes at the next sync pattern.
 *
 *--------------------------------------------------------------------*/

func (d *ubx_driver_t) ubx_read_frame() (*ubx_frame_t, error) {
	for {
		var b, err = d.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != UBX_SYNC_1 {
			continue
		}
		if b, err = d.reader.ReadByte(); err != nil {
			return nil, err
		}
		if b != UBX_SYNC_2 {
			continue
		}

		var header [4]byte
		if _, err = io.ReadFull(d.reader, header[:]); err != nil {
			return nil, err
		}
		var length = int(binary.LittleEndian.Uint16(header[2:4]))
		if length > UBX_MAX_PAYLOAD {
			gpsd_report(LOG_IO, "ubx: implausible length %d, resyncing", length)
			continue
		}

		var payload = make([]byte, length)
		if _, err = io.ReadFull(d.reader, payload); err != nil {
			return nil, err
		}
		var trailer [2]byte
		if _, err = io.ReadFull(d.reader, trailer[:]); err != nil {
			return nil, err
		}

		var cka, ckb = ubx_checksum(header[0], header[1], payload)
		if cka != trailer[0] || ckb != trailer[1] {
			gpsd_report(LOG_IO, "ubx: checksum error on class 0x%02x id 0x%02x",
				header[0], header[1])
			continue
		}

		return &ubx_frame_t{class: header[0], id: header[1], payload: payload}, nil
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	ubx_next_subframe
 *
 * Purpose:	Read frames until an RXM-SFRB arrives, then decode it.
 *
 * Returns:	The decoded subframe, or an error.  io.EOF means the
 *		stream ended cleanly.
 *
 *--------------------------------------------------------------------*/

func (d *ubx_driver_t) ubx_next_subframe() (subframe_t, error) {
	for {
		var frame, err = d.ubx_read_frame()
		if err != nil {
			return nil, err
		}
		if frame.class != UBX_CLASS_RXM || frame.id != UBX_RXM_SFRB {
			gpsd_report(LOG_IO, "ubx: skipping class 0x%02x id 0x%02x",
				frame.class, frame.id)
			continue
		}
		if len(frame.payload) != UBX_SFRB_PAYLOAD {
			gpsd_report(LOG_WARN, "ubx: RXM-SFRB length %d, want %d",
				len(frame.payload), UBX_SFRB_PAYLOAD)
			continue
		}

		var svid = uint32(frame.payload[1])
		var words [WORDS_PER_SUBFRAME]uint32
		for i := range words {
			/* receiver strips parity; keep the 24 data bits */
			words[i] = binary.LittleEndian.Uint32(frame.payload[2+4*i:]) & 0xffffff
		}

		var subframe, decodeErr = gpsd_interpret_subframe(d.context, svid, words)
		if decodeErr != nil {
			gpsd_report(LOG_WARN, "ubx: svid %d: %s", svid, decodeErr)
			continue
		}
		return subframe, nil
	}
}

/* ubx_frame_sfrb builds an RXM-SFRB frame around bare 24-bit words.
 * The drivers are read-only in normal use; this exists for recording
 * and replaying sessions. */
func ubx_frame_sfrb(chn uint8, svid uint8, words [WORDS_PER_SUBFRAME]uint32) []byte {
	var payload = make([]byte, UBX_SFRB_PAYLOAD)
	payload[0] = chn
	payload[1] = svid
	for i, word := range words {
		binary.LittleEndian.PutUint32(payload[2+4*i:], word&0xffffff)
	}

	var cka, ckb = ubx_checksum(UBX_CLASS_RXM, UBX_RXM_SFRB, payload)

	var frame = make([]byte, 0, 8+len(payload))
	frame = append(frame, UBX_SYNC_1, UBX_SYNC_2, UBX_CLASS_RXM, UBX_RXM_SFRB,
		uint8(len(payload)), uint8(len(payload)>>8))
	frame = append(frame, payload...)
	return append(frame, cka, ckb)
}

func (f *ubx_frame_t) String() string {
	return fmt.Sprintf("UBX class 0x%02x id 0x%02x (%d bytes)", f.class, f.id, len(f.payload))
}
