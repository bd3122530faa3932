package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrEmptyRoomCode     = errors.New("empty room code")
	ErrDuplicateRoomCode = errors.New("duplicate room code")
	ErrNoRooms           = errors.New("no rooms")
)

// Period is a time window on a single weekday. Start and End are decimal
// hours (1h30 = 1.5). Monday is day 1.
type Period struct {
	Weekday int
	Start   float64
	End     float64
}

func NewPeriod(weekday int, start, end float64) (Period, error) {
	p := Period{Weekday: weekday, Start: start, End: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Weekday < 1 || p.Weekday > 7 {
		return fmt.Errorf("%w: weekday %d out of range [1,7]", ErrInvalidPeriod, p.Weekday)
	}
	if math.IsNaN(p.Start) || math.IsNaN(p.End) {
		return fmt.Errorf("%w: bounds must be numbers", ErrInvalidPeriod)
	}
	if p.Start >= p.End {
		return fmt.Errorf("%w: start %s not before end %s", ErrInvalidPeriod, formatHour(p.Start), formatHour(p.End))
	}
	return nil
}

// Overlaps reports whether a and b share any instant on the same weekday.
// Bounds are compared strictly, so back-to-back periods do not conflict.
func Overlaps(a, b Period) bool {
	if a.Weekday != b.Weekday {
		return false
	}

	// a starts inside b
	if b.Start < a.Start && a.Start < b.End {
		return true
	}

	// a ends inside b
	if b.Start < a.End && a.End < b.End {
		return true
	}

	// b inside a, equal periods included
	if a.Start <= b.Start && b.End <= a.End {
		return true
	}

	return false
}

func (p Period) Overlaps(other Period) bool {
	return Overlaps(p, other)
}

func (p Period) String() string {
	return fmt.Sprintf("day %d, %s-%s", p.Weekday, formatHour(p.Start), formatHour(p.End))
}

func formatHour(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
