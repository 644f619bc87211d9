package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Client interface library for the gpsd daemon.
 *
 * Description:	Speaks the daemon's single-letter ASCII protocol over
 *		a plain TCP stream: responses look like
 *
 *		    GPSD,P=57.70889 11.97111,A=35.5,M=3
 *
 *		Each letter updates one group of fields in gps_data_t
 *		and sets the matching bit in the changed mask so the
 *		caller can tell what is fresh.  "X=?"-style responses
 *		mean the daemon has nothing for that letter and are
 *		skipped.
 *
 * API:		gps_open	Connect to a daemon.
 *		gps_poll	Read and unpack one buffer of responses.
 *		gps_query	Send a request, then poll.
 *		gps_set_raw_hook  Register a tap on the raw response text.
 *		gps_close	Shut the connection down.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
	"time"
)

const DEFAULT_GPSD_HOST = "localhost"
const DEFAULT_GPSD_PORT = "2947"

const MAXCHANNELS = 20

/* Fix mode, same values libgps has always used. */
const (
	MODE_NOT_SEEN = 0 /* no satellite data yet */
	MODE_NO_FIX   = 1 /* had a signal, no fix */
	MODE_2D       = 2
	MODE_3D       = 3
)

const (
	STATUS_NO_FIX   = 0
	STATUS_FIX      = 1
	STATUS_DGPS_FIX = 2
)

/* Bits in the changed-field mask returned by gps_poll. */
const (
	ONLINE_SET = 1 << iota
	TIME_SET
	LATLON_SET
	ALTITUDE_SET
	SPEED_SET
	TRACK_SET
	CLIMB_SET
	STATUS_SET
	MODE_SET
	DOP_SET
	POSERR_SET
	SATELLITE_SET
)

type gps_fix_t struct {
	time      float64 /* seconds since Unix epoch, with fraction */
	mode      int
	latitude  float64
	longitude float64
	altitude  float64 /* meters above mean sea level; NaN until seen */
	track     float64 /* degrees true; NaN until seen */
	speed     float64 /* meters per second */
	climb     float64
	eph       float64
	epv       float64
}

type gps_data_t struct {
	conn net.Conn

	online float64
	fix    gps_fix_t
	status int
	utc    string

	satellites_used int
	pdop            float64
	hdop            float64
	vdop            float64
	epe             float64

	satellites int /* in view */
	PRN        [MAXCHANNELS]int
	elevation  [MAXCHANNELS]int
	azimuth    [MAXCHANNELS]int
	ss         [MAXCHANNELS]int
	used       [MAXCHANNELS]int

	gps_id      string
	baudrate    int
	stopbits    int
	cycle       int
	driver_mode int

	raw_hook func(*gps_data_t, string)
}

/*-------------------------------------------------------------------
 *
 * Name:	gps_open
 *
 * Purpose:	Open a connection to a gpsd daemon.
 *
 * Inputs:	host, port - Empty strings get the usual defaults.
 *
 *--------------------------------------------------------------------*/

func gps_open(host string, port string) (*gps_data_t, error) {
	if host == "" {
		host = DEFAULT_GPSD_HOST
	}
	if port == "" {
		port = DEFAULT_GPSD_PORT
	}

	var conn, err = net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("can't reach gpsd at %s:%s: %w", host, port, err)
	}

	var gpsdata = &gps_data_t{conn: conn}
	gpsdata.fix.mode = MODE_NOT_SEEN
	gpsdata.status = STATUS_NO_FIX
	gpsdata.fix.track = math.NaN()
	gpsdata.fix.altitude = math.NaN()
	return gpsdata, nil
}

func gps_close(gpsdata *gps_data_t) error {
	return gpsdata.conn.Close()
}

func gps_set_raw_hook(gpsdata *gps_data_t, hook func(*gps_data_t, string)) {
	gpsdata.raw_hook = hook
}

/*-------------------------------------------------------------------
 *
 * Name:	gps_unpack
 *
 * Purpose:	Unpack a daemon response into the status structure.
 *
 * Returns:	Mask of the field groups that changed.
 *
 *--------------------------------------------------------------------*/

func gps_unpack(buf string, gpsdata *gps_data_t) int {
	var changed = 0

	for _, line := range strings.Split(buf, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "GPSD,") {
			continue
		}

		for _, field := range strings.Split(line[5:], ",") {
			if len(field) < 3 || field[1] != '=' {
				continue
			}
			if field[2] == '?' {
				/* daemon has nothing for this letter */
				continue
			}

			switch field[0] {
			case 'A':
				gpsdata.fix.altitude = atof(field[2:])
				changed |= ALTITUDE_SET
			case 'B':
				/* B=4800 8 N 1 */
				var v = strings.Fields(field[2:])
				if len(v) >= 4 {
					gpsdata.baudrate = atoi(v[0])
					gpsdata.stopbits = atoi(v[3])
				}
			case 'C':
				gpsdata.cycle = atoi(field[2:])
			case 'D':
				gpsdata.utc = field[2:]
				if ts, err := time.Parse(time.RFC3339, gpsdata.utc); err == nil {
					gpsdata.fix.time = float64(ts.UnixNano()) / 1e9
					changed |= TIME_SET
				}
			case 'E':
				fmt.Sscanf(field, "E=%f %f %f",
					&gpsdata.epe, &gpsdata.fix.eph, &gpsdata.fix.epv)
				changed |= POSERR_SET
			case 'I':
				gpsdata.gps_id = field[2:]
			case 'M':
				gpsdata.fix.mode = atoi(field[2:])
				changed |= MODE_SET
			case 'N':
				gpsdata.driver_mode = atoi(field[2:])
			case 'P':
				fmt.Sscanf(field, "P=%f %f",
					&gpsdata.fix.latitude, &gpsdata.fix.longitude)
				changed |= LATLON_SET
			case 'Q':
				fmt.Sscanf(field, "Q=%d %f %f %f",
					&gpsdata.satellites_used,
					&gpsdata.pdop, &gpsdata.hdop, &gpsdata.vdop)
				changed |= DOP_SET
			case 'S':
				gpsdata.status = atoi(field[2:])
				changed |= STATUS_SET
			case 'T':
				gpsdata.fix.track = atof(field[2:])
				changed |= TRACK_SET
			case 'U':
				gpsdata.fix.climb = atof(field[2:])
				changed |= CLIMB_SET
			case 'V':
				gpsdata.fix.speed = atof(field[2:])
				changed |= SPEED_SET
			case 'X':
				gpsdata.online = atof(field[2:])
				changed |= ONLINE_SET
			case 'Y':
				changed |= gps_unpack_satellites(field[2:], gpsdata)
			case 'Z':
				/* profiling control; nothing to keep */
			}
		}
	}

	if gpsdata.raw_hook != nil {
		gpsdata.raw_hook(gpsdata, buf)
	}

	return changed
}

/* Y=n:PRN el az ss used:PRN el az ss used:... */
func gps_unpack_satellites(field string, gpsdata *gps_data_t) int {
	var segments = strings.Split(field, ":")
	var count = atoi(segments[0])
	if count > MAXCHANNELS {
		count = MAXCHANNELS
	}
	gpsdata.satellites = count

	for j := 0; j < count && j+1 < len(segments); j++ {
		fmt.Sscanf(segments[j+1], "%d %d %d %d %d",
			&gpsdata.PRN[j], &gpsdata.elevation[j], &gpsdata.azimuth[j],
			&gpsdata.ss[j], &gpsdata.used[j])
	}
	return SATELLITE_SET
}

/*-------------------------------------------------------------------
 *
 * Name:	gps_poll
 *
 * Purpose:	Wait for and read data being streamed from the daemon.
 *
 * Returns:	Changed-field mask; 0 means nothing new.  The daemon
 *		terminates every response, so one read is one or more
 *		whole responses.
 *
 *--------------------------------------------------------------------*/

func gps_poll(gpsdata *gps_data_t) (int, error) {
	var buf [4096]byte

	var n, err = gpsdata.conn.Read(buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	gpsd_report(LOG_RAW, "libgps: <= %q", string(buf[:n]))
	return gps_unpack(string(buf[:n]), gpsdata), nil
}

/*-------------------------------------------------------------------
 *
 * Name:	gps_query
 *
 * Purpose:	Send a request to the daemon and unpack its reply.
 *
 *--------------------------------------------------------------------*/

func gps_query(gpsdata *gps_data_t, request string) (int, error) {
	if !strings.HasSuffix(request, "\n") {
		request += "\n"
	}
	if _, err := gpsdata.conn.Write([]byte(request)); err != nil {
		return 0, err
	}
	return gps_poll(gpsdata)
}

/* The C library leaned on atoi/atof tolerance; keep that behavior
 * rather than propagating parse errors from a chatty text stream. */
func atoi(s string) int {
	var n, _ = strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	var f, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
