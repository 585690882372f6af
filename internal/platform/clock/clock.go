package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in the local zone; task timestamps are
// displayed and bucketed by local day.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
