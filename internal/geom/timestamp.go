package geom

import (
	"math"
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

// maxRepresentableSeconds and minRepresentableSeconds bound the accepted
// Unix-second range to the years 0001 through 9999; values outside this
// range fail with TimestampOutOfRange.
const maxRepresentableSeconds = 253402300799 // 9999-12-31T23:59:59Z
const minRepresentableSeconds = -62135596800 // 0001-01-01T00:00:00Z

// FloorTimestamp converts a measure value (seconds since epoch, possibly
// fractional) to the timestamp at or before it.
func FloorTimestamp(m float64) (time.Time, error) {
	return secondsToTime(math.Floor(m))
}

// CeilTimestamp converts a measure value to the timestamp at or after it.
func CeilTimestamp(m float64) (time.Time, error) {
	return secondsToTime(math.Ceil(m))
}

func secondsToTime(seconds float64) (time.Time, error) {
	if seconds > maxRepresentableSeconds || seconds < minRepresentableSeconds {
		return time.Time{}, aiserr.New(aiserr.KindTimestampOutOfRange, "geom.secondsToTime",
			"measure value exceeds representable instant range")
	}
	return time.Unix(int64(seconds), 0).UTC(), nil
}
