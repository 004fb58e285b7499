package container

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DeleteAtHeader    = "X-Delete-At"
	DeleteAfterHeader = "X-Delete-After"
)

// DeleteDirective schedules a deletion instead of deleting right away. The
// only implementations are the values returned by DeleteAt and DeleteAfter.
type DeleteDirective interface {
	header() (key, value string, err error)
}

type deleteAt time.Time

type deleteAfter uint64

// DeleteAt asks the service to remove the object at the given instant.
func DeleteAt(t time.Time) DeleteDirective {
	return deleteAt(t)
}

// DeleteAfter asks the service to remove the object once the given number of
// seconds have passed.
func DeleteAfter(seconds uint64) DeleteDirective {
	return deleteAfter(seconds)
}

func (d deleteAt) header() (string, string, error) {
	t := time.Time(d)
	if t.IsZero() || t.Unix() < 0 {
		return "", "", errors.Wrapf(ErrInvalidDirective, "instant %s is before the epoch", t.UTC().Format(time.RFC3339))
	}
	return DeleteAtHeader, strconv.FormatInt(t.Unix(), 10), nil
}

func (d deleteAt) String() string {
	return "at " + time.Time(d).UTC().Format(time.RFC3339)
}

func (d deleteAfter) header() (string, string, error) {
	return DeleteAfterHeader, strconv.FormatUint(uint64(d), 10), nil
}

func (d deleteAfter) String() string {
	return "after " + strconv.FormatUint(uint64(d), 10) + "s"
}

// ParseDirective turns user input into a directive: an RFC3339 timestamp
// becomes DeleteAt, a whole number of seconds or a Go duration becomes
// DeleteAfter. Durations are rounded up to whole seconds.
func ParseDirective(s string) (DeleteDirective, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidDirective
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DeleteAt(t), nil
	}

	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return DeleteAfter(n), nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return nil, errors.Wrapf(ErrInvalidDirective, "negative duration %s", s)
		}
		// round up so a sub-second delay never means "now"
		return DeleteAfter(uint64((d + time.Second - 1) / time.Second)), nil
	}

	return nil, errors.Wrapf(ErrInvalidDirective, "cannot parse %q", s)
}
