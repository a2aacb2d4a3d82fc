// Package deadline buckets link deadlines by urgency. The calendar view and
// the deadline lists both classify through here so they never disagree about
// the same date.
package deadline

import (
	"fmt"
	"math"
	"time"
)

// Bucket is an urgency classification for a deadline.
type Bucket string

const (
	BucketNone     Bucket = "none"
	BucketExpired  Bucket = "expired"
	BucketToday    Bucket = "today"
	BucketUrgent   Bucket = "urgent"
	BucketSoon     Bucket = "soon"
	BucketUpcoming Bucket = "upcoming"
)

// Classification is the display form of a deadline's urgency.
type Classification struct {
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
	Style  string `json:"style"`
}

// DaysUntil returns the number of whole days between now and the deadline,
// rounded toward negative infinity: a deadline within the next 24 hours is
// 0 and anything already past is negative.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Floor(deadline.Sub(now).Hours() / 24))
}

// Classify maps a deadline to its urgency bucket. Thresholds: past dates are
// expired, 1-3 days is urgent, 4-7 days is soon, beyond that upcoming.
func Classify(deadline *time.Time, now time.Time) Classification {
	if deadline == nil {
		return Classification{Bucket: BucketNone, Label: "No deadline", Style: "gray"}
	}

	days := DaysUntil(*deadline, now)
	switch {
	case days < 0:
		return Classification{Bucket: BucketExpired, Label: "Expired", Style: "gray"}
	case days == 0:
		return Classification{Bucket: BucketToday, Label: "Today", Style: "red"}
	case days <= 3:
		return Classification{Bucket: BucketUrgent, Label: daysLabel(days), Style: "red"}
	case days <= 7:
		return Classification{Bucket: BucketSoon, Label: daysLabel(days), Style: "orange"}
	default:
		return Classification{Bucket: BucketUpcoming, Label: daysLabel(days), Style: "blue"}
	}
}

func daysLabel(days int) string {
	return fmt.Sprintf("%d days left", days)
}
