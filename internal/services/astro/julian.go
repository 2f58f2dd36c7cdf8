package astro

import "time"

// unixEpochJD is the Julian day of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

// JulianDay converts t to a Julian day number in UT.
func JulianDay(t time.Time) float64 {
	return unixEpochJD + float64(t.UnixNano())/float64(24*time.Hour)
}
