package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to serial port, hiding operating system differences.
 *
 * Description:	GPS receivers speaking a binary protocol sit on a
 *		serial line.  The drivers only need an io.Reader; this
 *		supplies one in raw mode at the receiver's speed.
 *
 *---------------------------------------------------------------*/

import (
	"github.com/pkg/term"
)

/*-------------------------------------------------------------------
 *
 * Name:	serial_port_open
 *
 * Purpose:	Open serial port.
 *
 * Inputs:	devicename	- Usually /dev/tty...
 *				  Could be /dev/rfcomm0 for Bluetooth.
 *
 *		baud		- Speed.  4800, 9600, 57600 bps, etc.
 *				  If 0, leave it alone.
 *
 * Returns 	Handle for serial port.
 *
 *---------------------------------------------------------------*/

func serial_port_open(devicename string, baud int) (*term.Term, error) {
	var fd, err = term.Open(devicename, term.RawMode)
	if err != nil {
		gpsd_report(LOG_ERROR, "could not open serial port %s: %s", devicename, err)
		return nil, err
	}

	switch baud {
	case 0: /* Leave it alone. */
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		fd.SetSpeed(baud)
	default:
		gpsd_report(LOG_WARN, "serial_port_open: unsupported speed %d, using 4800", baud)
		fd.SetSpeed(4800)
	}

	return fd, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        serial_port_close
 *
 * Purpose:     Close the device.
 *
 *--------------------------------------------------------------------*/

func serial_port_close(fd *term.Term) {
	if fd == nil {
		return
	}
	fd.Close()
}
