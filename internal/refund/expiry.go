package refund

import (
	"regexp"
	"time"

	"savings-finder/internal/models"
)

// time.Parse alone accepts single-digit months and days, so the shape is
// enforced separately.
var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Midnight strips the time of day, keeping the calendar date at UTC midnight
// so that date arithmetic is exact in whole days regardless of the caller's
// zone.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a strict YYYY-MM-DD string into a UTC midnight time. It
// rejects malformed strings and well-shaped strings that are not real
// calendar dates (2024-02-30) with an InvalidDateError.
func ParseDate(value string) (time.Time, error) {
	if !dateShape.MatchString(value) {
		return time.Time{}, &models.InvalidDateError{Value: value}
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, &models.InvalidDateError{Value: value}
	}
	return t, nil
}

// DaysUntilExpiry returns the number of whole days from today until the
// coupon stops being claimable. Already-expired coupons yield negative days;
// a coupon expiring today yields zero.
func DaysUntilExpiry(validUntil string, today time.Time) (int, error) {
	expiry, err := ParseDate(validUntil)
	if err != nil {
		return 0, err
	}
	return int(expiry.Sub(Midnight(today)).Hours() / 24), nil
}
