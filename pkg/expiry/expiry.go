// Package expiry derives how urgent a food item's expiry date is relative to
// a reference day.
package expiry

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// SoonThresholdDays is the last day count still classified as ExpiresSoon.
	SoonThresholdDays = 3
)

type Bucket int

const (
	Expired Bucket = iota
	ExpiresTomorrow
	ExpiresSoon
	Normal
)

// Buckets lists every bucket, most urgent first.
func Buckets() []Bucket {
	return []Bucket{Expired, ExpiresTomorrow, ExpiresSoon, Normal}
}

func (b Bucket) String() string {
	switch b {
	case Expired:
		return "expired"
	case ExpiresTomorrow:
		return "expires_tomorrow"
	case ExpiresSoon:
		return "expires_soon"
	case Normal:
		return "normal"
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// Tone is the presentation tag of a bucket.
func (b Bucket) Tone() string {
	switch b {
	case Expired, ExpiresTomorrow:
		return "danger"
	case ExpiresSoon:
		return "warning"
	case Normal:
		return "neutral"
	}
	return ""
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	for _, candidate := range Buckets() {
		if candidate.String() == string(text) {
			*b = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown expiry bucket %q", text)
}

type Classification struct {
	DaysRemaining int    `json:"days_remaining"`
	Bucket        Bucket `json:"bucket"`
	Label         string `json:"label"`
	Tone          string `json:"tone"`
}

// Classify compares the calendar dates of target and reference. Time of day
// and zone offsets are discarded first, so DST transitions cannot shift the count.
func Classify(target, reference time.Time) Classification {
	days := DaysBetween(reference, target)
	b := bucketFor(days)
	return Classification{
		DaysRemaining: days,
		Bucket:        b,
		Label:         label(b, days),
		Tone:          b.Tone(),
	}
}

// DaysBetween returns the number of calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

func bucketFor(days int) Bucket {
	switch {
	case days <= 0:
		return Expired
	case days == 1:
		return ExpiresTomorrow
	case days <= SoonThresholdDays:
		return ExpiresSoon
	default:
		return Normal
	}
}

func label(b Bucket, days int) string {
	switch b {
	case Expired:
		return "Expired"
	case ExpiresTomorrow:
		return "Expires tomorrow"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}

// dateOf keeps the wall-clock date of t and pins it to midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the calendar date of now in loc as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return dateOf(now)
}
