package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultOffset is the provider's fixed local offset. All user-entered
// wall-clock times are assumed to already be expressed in this offset; no
// timezone-aware conversion ever happens here.
const DefaultOffset = "+05:30"

// DefaultMinLead is the minimum gap between "now" and an accepted schedule,
// guarding against races with the provider's own minimum lead time.
const DefaultMinLead = time.Minute

var (
	// ErrInvalidDate is returned when a date is not of the form YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid schedule date")
	// ErrInvalidTime is returned when a time is not of the form HH:MM.
	ErrInvalidTime = errors.New("invalid schedule time")
	// ErrInvalidOffset is returned when an offset is not of the form ±HH:MM.
	ErrInvalidOffset = errors.New("invalid utc offset")
	// ErrScheduleTooSoon is returned when a schedule does not leave the
	// required minimum lead time.
	ErrScheduleTooSoon = errors.New("schedule must be in the future")
)

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// Timestamp is the canonical scheduling string of the fixed shape
// YYYY-MM-DDTHH:MM:00±HH:MM. It doubles as the idempotency key: two
// schedule attempts for the same moment collide at the provider and the
// second is treated as a duplicate rather than a double-send. Attempts for
// different lists at the same instant collide too; the key deliberately
// does not disambiguate beyond the moment itself.
type Timestamp string

// String returns the canonical timestamp string.
func (t Timestamp) String() string { return string(t) }

// IdempotencyKey returns the deduplication token derived from the
// timestamp. It is always the identical string.
func (t Timestamp) IdempotencyKey() string { return string(t) }

// Option customises a Resolver during construction.
type Option func(*Resolver)

// WithClock overrides the clock used by lead-time validation, useful for
// deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMinLead overrides the minimum lead time required for a schedule.
func WithMinLead(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.minLead = d
		}
	}
}

// Resolver composes canonical scheduling timestamps for a fixed UTC offset
// and validates their lead time against an injected clock.
type Resolver struct {
	offset  string
	zone    *time.Location
	now     func() time.Time
	minLead time.Duration
}

// NewResolver constructs a Resolver for the supplied fixed offset. An empty
// offset selects DefaultOffset.
func NewResolver(offset string, opts ...Option) (*Resolver, error) {
	if strings.TrimSpace(offset) == "" {
		offset = DefaultOffset
	}

	seconds, err := offsetSeconds(offset)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		offset:  offset,
		zone:    time.FixedZone("UTC"+offset, seconds),
		now:     time.Now,
		minLead: DefaultMinLead,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r, nil
}

// Offset returns the fixed offset this resolver composes timestamps for.
func (r *Resolver) Offset() string { return r.offset }

// Resolve composes the canonical timestamp for a local calendar date
// (YYYY-MM-DD) and wall-clock time (HH:MM). The conversion is a string
// composition, not a timezone calculation: callers must have interpreted
// the inputs in the resolver's fixed offset already. Resolve is pure, so
// identical inputs always yield the identical Timestamp.
func (r *Resolver) Resolve(date, clock string) (Timestamp, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}

	return Timestamp(date + "T" + clock + ":00" + r.offset), nil
}

// ValidateLeadTime rejects schedules at or before now plus the minimum lead
// time, with "now" computed in the resolver's fixed offset.
func (r *Resolver) ValidateLeadTime(ts Timestamp) error {
	at, err := time.Parse("2006-01-02T15:04:05-07:00", string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, string(ts))
	}

	cutoff := r.now().In(r.zone).Add(r.minLead)
	if !at.After(cutoff) {
		return fmt.Errorf("%w: need at least %s of lead time", ErrScheduleTooSoon, r.minLead)
	}
	return nil
}

func offsetSeconds(offset string) (int, error) {
	m := offsetPattern.FindStringSubmatch(offset)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}

	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return seconds, nil
}
