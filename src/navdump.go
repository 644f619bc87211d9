package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Decode 50bps navigation subframes and print them.
 *
 * Usage:	navdump [OPTIONS] [file ...]
 *
 *		Without --device, reads capture files (or stdin): one
 *		subframe per line, the satellite id followed by ten
 *		hex words, raw transport framing included.
 *
 *		    22 22c34d50 3216a928 ...
 *
 *		With --stripped, the words are 24-bit parity-stripped
 *		data as a chipset would deliver, and the normalizer is
 *		bypassed.
 *
 *		With --device, reads a live receiver instead using the
 *		protocol named by --protocol (ubx or sirf).
 *
 *		Each decoded subframe prints on one line.  At EOF the
 *		collected navigation state is summarized.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

func NavDumpMain() {
	var device = pflag.StringP("device", "d", "", "Read a live receiver on this serial device.")
	var protocol = pflag.StringP("protocol", "p", "ubx", "Receiver protocol for --device: ubx or sirf.")
	var baud = pflag.IntP("baud", "b", 9600, "Serial speed for --device.")
	var stripped = pflag.Bool("stripped", false, "Capture words are 24-bit, parity already stripped.")
	var verbosity = pflag.IntP("debug", "D", 0, "Debug level.")
	var showVersion = pflag.BoolP("version", "V", false, "Print version and exit.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - decode GPS 50bps navigation subframes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [file ...]\n", os.Args[0])
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

	var context = new_gps_context()

	if *device != "" {
		navdump_live(context, *device, *protocol, *baud)
	} else if pflag.NArg() == 0 {
		navdump_capture(context, os.Stdin, *stripped)
	} else {
		for _, arg := range pflag.Args() {
			if arg == "-" {
				navdump_capture(context, os.Stdin, *stripped)
				continue
			}
			var fp, err = os.Open(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Can't open %s for read: %s\n", arg, err)
				os.Exit(1)
			}
			navdump_capture(context, fp, *stripped)
			fp.Close()
		}
	}

	var week, leap, valid = context.snapshot()
	fmt.Printf("week:%d leap:%d valid:%t\n", week, leap, valid)
}

/* One subframe per line: svid then ten hex words. */
func navdump_capture(context *gps_context_t, fp io.Reader, stripped bool) {
	var scanner = bufio.NewScanner(fp)
	var lineno int

	for scanner.Scan() {
		lineno++
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var fields = strings.Fields(line)
		if len(fields) != 1+WORDS_PER_SUBFRAME {
			fmt.Fprintf(os.Stderr, "line %d: want svid plus %d words, got %d fields\n",
				lineno, WORDS_PER_SUBFRAME, len(fields))
			continue
		}

		var svid, svidErr = strconv.ParseUint(fields[0], 10, 32)
		if svidErr != nil {
			fmt.Fprintf(os.Stderr, "line %d: bad svid %q\n", lineno, fields[0])
			continue
		}

		var words [WORDS_PER_SUBFRAME]uint32
		var bad = false
		for i := range words {
			var w, wordErr = strconv.ParseUint(fields[1+i], 16, 32)
			if wordErr != nil {
				fmt.Fprintf(os.Stderr, "line %d: bad word %q\n", lineno, fields[1+i])
				bad = true
				break
			}
			words[i] = uint32(w)
		}
		if bad {
			continue
		}

		var subframe subframe_t
		var err error
		if stripped {
			subframe, err = gpsd_interpret_subframe(context, uint32(svid), words)
		} else {
			subframe, err = gpsd_interpret_subframe_raw(context, uint32(svid), words)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %s\n", lineno, err)
			continue
		}
		fmt.Println(subframe)
	}
}

func navdump_live(context *gps_context_t, device string, protocol string, baud int) {
	if protocol != "ubx" && protocol != "sirf" {
		fmt.Fprintf(os.Stderr, "Unknown protocol %q: want ubx or sirf\n", protocol)
		os.Exit(1)
	}

	var fd, err = serial_port_open(device, baud)
	if err != nil {
		os.Exit(1)
	}
	defer serial_port_close(fd)

	var next func() (subframe_t, error)
	if protocol == "ubx" {
		next = ubx_new_driver(fd, context).ubx_next_subframe
	} else {
		next = sirf_new_driver(fd, context).sirf_next_subframe
	}

	for {
		var subframe, readErr = next()
		if errors.Is(readErr, io.EOF) {
			return
		}
		if readErr != nil {
			gpsd_report(LOG_ERROR, "navdump: %s: %s", device, readErr)
			return
		}
		fmt.Println(subframe)
	}
}
