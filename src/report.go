package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Leveled report sink.
 *
 * Description:	The decoders only ever pick a severity.  Where the
 *		output goes, and how much of it is wanted, is decided
 *		here, once, at program start.
 *
 *		Levels run from LOG_ERROR (always shown) to LOG_RAW
 *		(byte-level I/O chatter).  Anything above the
 *		verbosity given to report_init is dropped before
 *		formatting.
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

type report_level_e int

const (
	LOG_ERROR report_level_e = iota /* errors */
	LOG_WARN                        /* not errors, but may indicate a problem */
	LOG_INF                         /* key informative messages */
	LOG_PROG                        /* progress reports */
	LOG_IO                          /* IO to and from devices */
	LOG_RAW                         /* raw low-level I/O */
)

var report_logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
})

var report_verbosity = LOG_ERROR

/*-------------------------------------------------------------------
 *
 * Name:	report_init
 *
 * Purpose:	Set the verbosity ceiling for the whole process.
 *
 * Inputs:	verbosity - Highest level that will be emitted.
 *
 *--------------------------------------------------------------------*/

func report_init(verbosity report_level_e) {
	report_verbosity = verbosity

	if verbosity >= LOG_PROG {
		report_logger.SetLevel(log.DebugLevel)
	} else {
		report_logger.SetLevel(log.InfoLevel)
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	gpsd_report
 *
 * Purpose:	Emit a formatted message at the given severity.
 *
 * Inputs:	level	- One of the LOG_ constants above.
 *		format	- Printf-style format.  No trailing newline.
 *		args	- Arguments for format.
 *
 *--------------------------------------------------------------------*/

func gpsd_report(level report_level_e, format string, args ...any) {
	if level > report_verbosity {
		return
	}

	switch level {
	case LOG_ERROR:
		report_logger.Errorf(format, args...)
	case LOG_WARN:
		report_logger.Warnf(format, args...)
	case LOG_INF:
		report_logger.Infof(format, args...)
	default:
		report_logger.Debugf(format, args...)
	}
}
