package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Write position fixes as a GPX 1.1 track file.
 *
 * Description: Fixes arrive whenever the daemon has one; not all of
 *		them are worth keeping.  A fix is logged when:
 *
 *		  - it lands on a new whole second, and
 *		  - the fix is at least 2D, and
 *		  - if a minimum-move distance is set, we have moved
 *		    at least that far since the last logged point.
 *
 *		A gap longer than the quiet timeout closes the current
 *		<trkseg> and starts a new track.
 *
 *		There are two alternatives for output:
 *
 *		  a full file path	 One growing track file.
 *
 *		  a log directory	 Daily names are created there,
 *					 and rolled over at midnight UTC.
 *
 *		Use one or the other but not both.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/geo/s2"
	"github.com/lestrrat-go/strftime"
)

/* Quadratic mean radius, meters.  Good enough for a should-we-bother
 * distance filter. */
const EARTH_RADIUS = 6372795.0

const GPX_DAILY_NAME = "gopsd-%Y-%m-%d.gpx"

type gpx_writer_t struct {
	out    io.Writer
	closer io.Closer

	daily      bool
	logdir     string
	open_fname string

	minmove float64       /* meters; 0 disables the filter */
	timeout time.Duration /* quiet time that ends a track */

	intrack      bool
	first        bool
	old_int_time int64
	old_lat      float64
	old_lon      float64
}

/*-------------------------------------------------------------------
 *
 * Name:	gpx_new_writer
 *
 * Purpose:	Set up GPX output.
 *
 * Inputs:	path	- Output file, or "-"/empty for stdout.
 *			  Ignored when daily is true.
 *		daily	- True for automatic daily names; path is
 *			  then the directory to put them in.
 *
 *--------------------------------------------------------------------*/

func gpx_new_writer(path string, daily bool, minmove float64, timeout time.Duration) (*gpx_writer_t, error) {
	var w = &gpx_writer_t{
		daily:   daily,
		minmove: minmove,
		timeout: timeout,
		first:   true,
	}

	if daily {
		w.logdir = path
		if w.logdir == "" {
			w.logdir = "."
		}
		var stat, statErr = os.Stat(w.logdir)
		if statErr == nil && !stat.IsDir() {
			return nil, fmt.Errorf("log file location %q is not a directory", w.logdir)
		}
		if statErr != nil {
			// Doesn't exist.  Try to create it.  Parent must exist;
			// we don't create multiple levels like "mkdir -p".
			if mkdirErr := os.Mkdir(w.logdir, 0755); mkdirErr != nil {
				return nil, fmt.Errorf("failed to create log file location %q: %w", w.logdir, mkdirErr)
			}
			gpsd_report(LOG_INF, "gpx: log file location %q has been created", w.logdir)
		}
		return w, nil // first file opens on the first fix
	}

	if path == "" || path == "-" {
		w.out = os.Stdout
	} else {
		var f, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("can't open %q for write: %w", path, err)
		}
		w.out = f
		w.closer = f
	}
	w.print_gpx_header()
	return w, nil
}

// gpx_writer_to writes to an arbitrary stream; handy for tests.
func gpx_writer_to(out io.Writer, minmove float64, timeout time.Duration) *gpx_writer_t {
	var w = &gpx_writer_t{
		out:     out,
		minmove: minmove,
		timeout: timeout,
		first:   true,
	}
	w.print_gpx_header()
	return w
}

func (w *gpx_writer_t) print_gpx_header() {
	fmt.Fprintf(w.out, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	fmt.Fprintf(w.out, "<gpx version=\"1.1\" creator=\"gopsd logger\"\n")
	fmt.Fprintf(w.out, "        xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\"\n")
	fmt.Fprintf(w.out, "        xmlns=\"http://www.topografix.com/GPX/1.1\"\n")
	fmt.Fprintf(w.out, "        xsi:schemaLocation=\"http://www.topografix.com/GPS/1/1\n")
	fmt.Fprintf(w.out, "        http://www.topografix.com/GPX/1/1/gpx.xsd\">\n")
	fmt.Fprintf(w.out, " <metadata>\n")
	fmt.Fprintf(w.out, "  <name>gopsd GPS logger dump</name>\n")
	fmt.Fprintf(w.out, " </metadata>\n")
}

func (w *gpx_writer_t) print_gpx_trk_start() {
	fmt.Fprintf(w.out, " <trk>\n")
	fmt.Fprintf(w.out, "  <trkseg>\n")
}

func (w *gpx_writer_t) print_gpx_trk_end() {
	fmt.Fprintf(w.out, "  </trkseg>\n")
	fmt.Fprintf(w.out, " </trk>\n")
}

func (w *gpx_writer_t) print_fix(fix *gps_fix_t, when time.Time) {
	fmt.Fprintf(w.out, "   <trkpt lat=\"%f\" lon=\"%f\">\n", fix.latitude, fix.longitude)
	if !math.IsNaN(fix.altitude) {
		fmt.Fprintf(w.out, "    <ele>%f</ele>\n", fix.altitude)
	}
	fmt.Fprintf(w.out, "    <time>%s</time>\n", when.UTC().Format("2006-01-02T15:04:05Z"))
	if fix.mode == MODE_NO_FIX {
		fmt.Fprintf(w.out, "    <fix>none</fix>\n")
	} else {
		fmt.Fprintf(w.out, "    <fix>%dd</fix>\n", fix.mode)
	}
	fmt.Fprintf(w.out, "   </trkpt>\n")
}

/*-------------------------------------------------------------------
 *
 * Name:	conditionally_log_fix
 *
 * Purpose:	Log one fix, if it is worth logging.
 *
 *--------------------------------------------------------------------*/

func (w *gpx_writer_t) conditionally_log_fix(fix *gps_fix_t) {
	var int_time = int64(fix.time)
	if int_time == w.old_int_time || fix.mode < MODE_2D {
		return
	}

	/* may not be worth logging if we've moved only a very short distance */
	if w.minmove > 0 && !w.first &&
		earth_distance(fix.latitude, fix.longitude, w.old_lat, w.old_lon) < w.minmove {
		return
	}

	if w.daily {
		w.rotate_daily(time.Unix(int_time, 0))
		if w.out == nil {
			return // couldn't open; already reported
		}
	}

	/*
	 * A gap longer than the timeout means the receiver went away;
	 * close out the track rather than drawing a straight line
	 * across the dead time.
	 */
	if !w.first && w.intrack && int_time-w.old_int_time > int64(w.timeout.Seconds()) {
		w.print_gpx_trk_end()
		w.intrack = false
	}

	if !w.intrack {
		w.print_gpx_trk_start()
		w.intrack = true
		w.first = false
	}

	w.old_int_time = int_time
	if w.minmove > 0 {
		w.old_lat = fix.latitude
		w.old_lon = fix.longitude
	}
	w.print_fix(fix, time.Unix(int_time, 0))
}

/* Open (and roll over) daily track files, same strategy as a daily
 * packet log: name from the current date, UTC. */
func (w *gpx_writer_t) rotate_daily(now time.Time) {
	var fname, err = strftime.Format(GPX_DAILY_NAME, now.UTC())
	if err != nil {
		gpsd_report(LOG_ERROR, "gpx: bad daily name format: %s", err)
		return
	}

	if w.out != nil && fname == w.open_fname {
		return
	}

	if w.out != nil {
		w.finish()
	}

	var full_path = filepath.Join(w.logdir, fname)
	gpsd_report(LOG_INF, "gpx: opening track file %q", full_path)

	var f, openErr = os.Create(full_path)
	if openErr != nil {
		gpsd_report(LOG_ERROR, "gpx: can't open %q for write: %s", full_path, openErr)
		w.out = nil
		w.open_fname = ""
		return
	}
	w.out = f
	w.closer = f
	w.open_fname = fname
	w.intrack = false
	w.print_gpx_header()
}

/*-------------------------------------------------------------------
 *
 * Name:	finish
 *
 * Purpose:	Emit the GPX footer and close the file.  Called on
 *		exit and on daily rollover.
 *
 *--------------------------------------------------------------------*/

func (w *gpx_writer_t) finish() {
	if w.out == nil {
		return
	}
	if w.intrack {
		w.print_gpx_trk_end()
		w.intrack = false
	}
	fmt.Fprintf(w.out, "</gpx>\n")
	if w.closer != nil {
		w.closer.Close()
		w.closer = nil
	}
	w.out = nil
	w.open_fname = ""
}

/* Great-circle distance between two points, meters. */
func earth_distance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	var a = s2.LatLngFromDegrees(lat1, lon1)
	var b = s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * EARTH_RADIUS
}
