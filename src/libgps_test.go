package gopsd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpackPositionAndAltitude(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,P=57.708890 11.971110,A=35.5\n", gpsdata)

	assert.Equal(t, LATLON_SET|ALTITUDE_SET, changed)
	assert.InDelta(t, 57.708890, gpsdata.fix.latitude, 1e-6)
	assert.InDelta(t, 11.971110, gpsdata.fix.longitude, 1e-6)
	assert.InDelta(t, 35.5, gpsdata.fix.altitude, 1e-6)
}

func TestUnpackModeStatusAndMotion(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,M=3,S=2,V=12.5,T=270.0,U=-0.3\n", gpsdata)

	assert.Equal(t, MODE_SET|STATUS_SET|SPEED_SET|TRACK_SET|CLIMB_SET, changed)
	assert.Equal(t, MODE_3D, gpsdata.fix.mode)
	assert.Equal(t, STATUS_DGPS_FIX, gpsdata.status)
	assert.InDelta(t, 12.5, gpsdata.fix.speed, 1e-6)
	assert.InDelta(t, 270.0, gpsdata.fix.track, 1e-6)
	assert.InDelta(t, -0.3, gpsdata.fix.climb, 1e-6)
}

func TestUnpackTime(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,D=2005-06-19T12:12:42.00Z\n", gpsdata)

	assert.Equal(t, TIME_SET, changed)
	assert.Equal(t, "2005-06-19T12:12:42.00Z", gpsdata.utc)
	assert.InDelta(t, 1119183162.0, gpsdata.fix.time, 1e-3)
}

func TestUnpackDop(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,Q=7 1.80 1.10 1.40\n", gpsdata)

	assert.Equal(t, DOP_SET, changed)
	assert.Equal(t, 7, gpsdata.satellites_used)
	assert.InDelta(t, 1.80, gpsdata.pdop, 1e-6)
	assert.InDelta(t, 1.10, gpsdata.hdop, 1e-6)
	assert.InDelta(t, 1.40, gpsdata.vdop, 1e-6)
}

func TestUnpackSatellites(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,Y=3:12 45 180 40 1:24 10 90 33 0:31 78 300 44 1:\n", gpsdata)

	assert.Equal(t, SATELLITE_SET, changed)
	assert.Equal(t, 3, gpsdata.satellites)
	assert.Equal(t, [3]int{12, 24, 31}, [3]int{gpsdata.PRN[0], gpsdata.PRN[1], gpsdata.PRN[2]})
	assert.Equal(t, 45, gpsdata.elevation[0])
	assert.Equal(t, 300, gpsdata.azimuth[2])
	assert.Equal(t, 0, gpsdata.used[1])
	assert.Equal(t, 1, gpsdata.used[2])
}

func TestUnpackSkipsUnknownValues(t *testing.T) {
	var gpsdata = new(gps_data_t)
	gpsdata.fix.altitude = math.NaN()

	var changed = gps_unpack("GPSD,A=?,M=?,P=?\n", gpsdata)

	assert.Zero(t, changed)
	assert.True(t, math.IsNaN(gpsdata.fix.altitude))
	assert.Equal(t, MODE_NOT_SEEN, gpsdata.fix.mode)
}

func TestUnpackIgnoresForeignLines(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("$GPGGA,123519,4807.038,N,01131.000,E\nGPSD,M=2\n", gpsdata)

	assert.Equal(t, MODE_SET, changed)
	assert.Equal(t, MODE_2D, gpsdata.fix.mode)
}

func TestUnpackMultipleResponses(t *testing.T) {
	var gpsdata = new(gps_data_t)

	var changed = gps_unpack("GPSD,X=1119183162.0\r\nGPSD,M=3\r\n", gpsdata)

	assert.Equal(t, ONLINE_SET|MODE_SET, changed)
	assert.InDelta(t, 1119183162.0, gpsdata.online, 1e-3)
	assert.Equal(t, MODE_3D, gpsdata.fix.mode)
}

func TestUnpackDeviceSettings(t *testing.T) {
	var gpsdata = new(gps_data_t)

	gps_unpack("GPSD,B=4800 8 N 1,C=1,N=1,I=SiRF-II\n", gpsdata)

	assert.Equal(t, 4800, gpsdata.baudrate)
	assert.Equal(t, 1, gpsdata.stopbits)
	assert.Equal(t, 1, gpsdata.cycle)
	assert.Equal(t, 1, gpsdata.driver_mode)
	assert.Equal(t, "SiRF-II", gpsdata.gps_id)
}

func TestUnpackRawHook(t *testing.T) {
	var gpsdata = new(gps_data_t)
	var seen string
	gps_set_raw_hook(gpsdata, func(_ *gps_data_t, buf string) { seen = buf })

	gps_unpack("GPSD,M=2\n", gpsdata)

	assert.Equal(t, "GPSD,M=2\n", seen)
}
