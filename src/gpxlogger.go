package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Connect to a gpsd daemon and log the fix stream as GPX.
 *
 * Usage:	gpxlogger [OPTIONS] [server[:port]]
 *
 *		Runs until interrupted; the GPX footer is written on
 *		the way out so the file is always well formed.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

func GpxLoggerMain() {
	var config = client_config_load()

	var output = pflag.StringP("output", "o", "", "Dump the log to this file instead of stdout.")
	var logdir = pflag.StringP("logdir", "l", config.Logdir, "Write daily track files into this directory instead.")
	var minmove = pflag.Float64P("minmove", "m", config.Minmove, "Suppress fixes closer than this many meters to the last one.")
	var timeout = pflag.IntP("timeout", "t", config.Timeout, "Start a new track after this many quiet seconds.")
	var verbosity = pflag.IntP("debug", "D", 0, "Debug level.")
	var showVersion = pflag.BoolP("version", "V", false, "Print version and exit.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - gpsd client that logs fixes in GPX format\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [server[:port]]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		printVersion(false)
		os.Exit(0)
	}

	report_init(report_level_e(*verbosity))

	if *timeout <= 0 {
		*timeout = 600
	}

	var host = config.Host
	var port = config.Port
	if pflag.NArg() > 0 {
		host = pflag.Arg(0)
		if h, p, found := strings.Cut(host, ":"); found {
			host, port = h, p
		}
	}

	var writer *gpx_writer_t
	var writerErr error
	if *logdir != "" {
		writer, writerErr = gpx_new_writer(*logdir, true, *minmove, time.Duration(*timeout)*time.Second)
	} else {
		writer, writerErr = gpx_new_writer(*output, false, *minmove, time.Duration(*timeout)*time.Second)
	}
	if writerErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", writerErr)
		os.Exit(1)
	}

	var gpsdata, openErr = gps_open(host, port)
	if openErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", openErr)
		os.Exit(1)
	}

	/* Finish the file on ^C or SIGTERM. */
	var signals = make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		writer.finish()
		gps_close(gpsdata)
		os.Exit(0)
	}()

	/* Watcher mode: the daemon pushes fixes as they happen. */
	if _, err := gps_query(gpsdata, "w+x"); err != nil {
		fmt.Fprintf(os.Stderr, "can't start watcher mode: %s\n", err)
		os.Exit(1)
	}

	for {
		var changed, err = gps_poll(gpsdata)
		if err != nil {
			gpsd_report(LOG_ERROR, "gpxlogger: read from daemon failed: %s", err)
			break
		}
		if changed&(TIME_SET|LATLON_SET) != 0 {
			writer.conditionally_log_fix(&gpsdata.fix)
		}
	}

	writer.finish()
	gps_close(gpsdata)
}
