package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"
)

// Recognised keys of a constraints object.
const (
	OptionMaxPerDay     = "max_per_day"
	OptionFoodAfterSlot = "food_after_slot"
)

// Defaults applied when a constraints object omits a key.
const (
	DefaultMaxPerDay     = 3
	DefaultFoodAfterSlot = 1
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidDateRange signals a missing, malformed or inverted date range.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInvalidOption signals a non-positive or non-integral constraint value.
	ErrInvalidOption = errors.New("invalid scheduling option")
)

// Options configures problem formulation and the search cutoff.
type Options struct {
	// MaxPerDay is the number of slot variables generated per day.
	MaxPerDay int
	// FoodAfterSlot is the minimum 1-based slot index for food activities, per day.
	FoodAfterSlot int
	// MaxNodes caps candidate evaluations. Zero means unlimited.
	MaxNodes int
}

// DefaultOptions returns the documented defaults with no search budget.
func DefaultOptions() Options {
	return Options{
		MaxPerDay:     DefaultMaxPerDay,
		FoodAfterSlot: DefaultFoodAfterSlot,
	}
}

// Validate rejects non-positive slot options and negative budgets.
func (o Options) Validate() error {
	if o.MaxPerDay <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, OptionMaxPerDay, o.MaxPerDay)
	}
	if o.FoodAfterSlot <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, OptionFoodAfterSlot, o.FoodAfterSlot)
	}
	if o.MaxNodes < 0 {
		return fmt.Errorf("%w: node budget must not be negative, got %d", ErrInvalidOption, o.MaxNodes)
	}
	return nil
}

// OptionsFromMap overlays the recognised keys of raw onto base. Unknown keys are
// ignored; present keys must hold positive integers (numbers or numeric strings).
func OptionsFromMap(base Options, raw map[string]any) (Options, error) {
	opts := base
	fields := []struct {
		key    string
		target *int
	}{
		{OptionMaxPerDay, &opts.MaxPerDay},
		{OptionFoodAfterSlot, &opts.FoodAfterSlot},
	}
	for _, field := range fields {
		value, ok := raw[field.key]
		if !ok {
			continue
		}
		parsed, err := positiveInt(field.key, value)
		if err != nil {
			return base, err
		}
		*field.target = parsed
	}
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}

func positiveInt(key string, value any) (int, error) {
	switch v := value.(type) {
	case bool, nil:
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidOption, key)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidOption, key, v)
		}
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidOption, key, v)
		}
	}
	parsed, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidOption, key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidOption, key, parsed)
	}
	return parsed, nil
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates and validates their order.
func ParseDateRange(start, end string) (DateRange, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start date %q: %v", ErrInvalidDateRange, start, err)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date %q: %v", ErrInvalidDateRange, end, err)
	}
	return NewDateRange(startDate, endDate)
}

// NewDateRange truncates both bounds to calendar dates and validates their order.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: civilDate(start), End: civilDate(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate requires both bounds and End on or after Start.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if r.Days() <= 0 {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidDateRange,
			r.End.Format(dateLayout), r.Start.Format(dateLayout))
	}
	return nil
}

// Days returns end - start + 1 in calendar days. Non-positive for inverted ranges.
func (r DateRange) Days() int {
	diff := civilDate(r.End).Sub(civilDate(r.Start))
	return int(math.Round(diff.Hours()/24)) + 1
}

// DateOf returns the calendar date of the 1-based day index.
func (r DateRange) DateOf(day int) time.Time {
	return civilDate(r.Start).AddDate(0, 0, day-1)
}

func civilDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
