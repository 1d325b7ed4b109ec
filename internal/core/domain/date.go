package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of WorkDate, as produced by HTML date inputs.
const DateLayout = "2006-01-02"

// WorkDate is a calendar day without time of day.
type WorkDate struct {
	time.Time
}

// NewWorkDate creates a WorkDate at midnight UTC.
func NewWorkDate(year int, month time.Month, day int) WorkDate {
	return WorkDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseWorkDate parses a YYYY-MM-DD string.
func ParseWorkDate(s string) (WorkDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return WorkDate{}, fmt.Errorf("%w: work date %q is not YYYY-MM-DD", ErrValidation, s)
	}
	return WorkDate{Time: t}, nil
}

func (d WorkDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d WorkDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *WorkDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = WorkDate{}
		return nil
	}
	parsed, err := ParseWorkDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
