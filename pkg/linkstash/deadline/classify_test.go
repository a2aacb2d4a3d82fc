package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNoDeadline(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	c := Classify(nil, now)

	assert.Equal(t, BucketNone, c.Bucket)
	assert.Equal(t, "No deadline", c.Label)
}

func TestClassifyBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		days   int
		bucket Bucket
		label  string
	}{
		{"expired", -1, BucketExpired, "Expired"},
		{"today", 0, BucketToday, "Today"},
		{"urgent lower bound", 1, BucketUrgent, "1 days left"},
		{"urgent upper bound", 3, BucketUrgent, "3 days left"},
		{"soon lower bound", 4, BucketSoon, "4 days left"},
		{"soon upper bound", 7, BucketSoon, "7 days left"},
		{"upcoming", 8, BucketUpcoming, "8 days left"},
		{"far future", 42, BucketUpcoming, "42 days left"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := now.AddDate(0, 0, tc.days)
			c := Classify(&d, now)

			assert.Equal(t, tc.bucket, c.Bucket)
			assert.Equal(t, tc.label, c.Label)
		})
	}
}

func TestClassifyPartialDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// A deadline later the same day is still "today"
	sameDay := now.Add(6 * time.Hour)
	assert.Equal(t, BucketToday, Classify(&sameDay, now).Bucket)

	// A deadline a few hours ago rounds down to -1: expired
	justPast := now.Add(-6 * time.Hour)
	assert.Equal(t, BucketExpired, Classify(&justPast, now).Bucket)
}

func TestDaysUntilFloors(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysUntil(now.Add(36*time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now.Add(12*time.Hour), now))
	assert.Equal(t, -1, DaysUntil(now.Add(-1*time.Hour), now))
	assert.Equal(t, -2, DaysUntil(now.Add(-25*time.Hour), now))
}

func TestClassifierSharedAcrossViews(t *testing.T) {
	// The calendar and the deadline list must agree on the same date
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	d := now.AddDate(0, 0, 3)

	list := Classify(&d, now)
	calendar := Classify(&d, now)

	assert.Equal(t, list, calendar)
}
