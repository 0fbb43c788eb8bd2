package agent

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDueDate resolves a due-date string against a reference time.
// Strict timestamp layouts are tried first, then other absolute formats,
// then natural-language phrases like "tomorrow" or "next Friday".
// Ambiguous phrases resolve to the future relative to now.
func ParseDueDate(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	if t, err := dateparse.ParseIn(s, now.Location()); err == nil {
		return t, nil
	}

	r, err := naturalParser.Parse(s, now)
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("%w: invalid due date %q", ErrInvalidArgument, s)
	}

	return preferFuture(r.Time, now), nil
}

// preferFuture shifts a day-ambiguous result forward so "Friday" means the
// coming Friday and a time earlier today means that time tomorrow.
func preferFuture(t, now time.Time) time.Time {
	for i := 0; i < 7 && t.Before(now); i++ {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
