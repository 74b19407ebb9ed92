// Package schedule computes the time windows covered by periodic digests.
package schedule

import (
	"time"

	"github.com/hiconvo/notifier/errors"
)

const _minutesPerDay = 24 * 60

// TimeSlice returns the most recently elapsed window of the given length, as
// of now. Windows are aligned to midnight UTC, so minutes must divide a day
// evenly. The returned times are in UTC.
func TimeSlice(minutes int, now time.Time) (from, to time.Time, err error) {
	if minutes <= 0 || minutes > _minutesPerDay || _minutesPerDay%minutes != 0 {
		return time.Time{}, time.Time{}, errors.E(errors.Opf("schedule.TimeSlice(minutes=%d)", minutes),
			errors.Validation, errors.Str("interval must be a factor of 1440 minutes"))
	}

	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	elapsed := int(now.Sub(midnight) / time.Minute)

	to = midnight.Add(time.Duration(elapsed/minutes*minutes) * time.Minute)
	from = to.Add(-time.Duration(minutes) * time.Minute)

	return from, to, nil
}
