// Package gopsd is a Go rework of the gpsd 50bps navigation message
// machinery: the IS-GPS-200 subframe decoder, the receiver drivers that
// feed it, and the client-side tools that consume the daemon's output.
package gopsd
