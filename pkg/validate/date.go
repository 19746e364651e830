package validate

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar date query parameter. It accepts YYYY-MM-DD as well as
// full RFC 3339 timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalText(b []byte) error {
	s := string(b)
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// Ptr returns the wrapped time, or nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
