package base

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"payfunnels/internal/provider"
)

// Params reads typed values out of a host parameter bag. Values arrive as
// decoded JSON/YAML, so numbers may be float64, int, json.Number or strings.
type Params map[string]any

// String returns the value of key as sent, or "" when absent. Numbers are
// rendered without exponent so numeric ids survive a JSON round trip.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// RequiredString returns the value of key or a validation error when empty.
func (p Params) RequiredString(key string) (string, error) {
	s := p.String(key)
	if s == "" {
		return "", provider.ValidationError("parameter %q is required", key)
	}
	return s, nil
}

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Int returns key as an integer, falling back to def when absent.
func (p Params) Int(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	f, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, provider.ValidationError("parameter %q must be a whole number", key)
	}
	return int(f), nil
}

// Float returns key as a float64.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, provider.ValidationError("parameter %q is required", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, provider.ValidationError("parameter %q must be numeric", key)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, provider.ValidationError("parameter %q must be numeric", key)
		}
		return f, nil
	default:
		return 0, provider.ValidationError("parameter %q must be numeric", key)
	}
}

// ValidatePaging enforces limit >= 1 and page >= 1.
func ValidatePaging(limit, page int) error {
	if limit < 1 {
		return provider.ValidationError("limit must be at least 1")
	}
	if page < 1 {
		return provider.ValidationError("page must be at least 1")
	}
	return nil
}

// ValidateOption checks value is one of options.
func ValidateOption(key, value string, options []string) error {
	if !contains(options, value) {
		return provider.ValidationError("%s must be one of: %s", key, strings.Join(options, ", "))
	}
	return nil
}

// calendarLayouts are the timestamp forms accepted for date parameters.
var calendarLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCalendarTime parses a date parameter. Zone-less values are read as
// UTC; numbers are epoch milliseconds.
func ParseCalendarTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case float64:
		return time.UnixMilli(int64(math.Floor(t))).UTC(), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, provider.ValidationError("invalid date %q", t.String())
		}
		return time.UnixMilli(int64(math.Floor(f))).UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range calendarLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, provider.ValidationError("invalid date %q", s)
	default:
		return time.Time{}, provider.ValidationError("invalid date %v", v)
	}
}

// UnixSeconds floors a timestamp's milliseconds to whole seconds.
func UnixSeconds(t time.Time) int64 {
	return int64(math.Floor(float64(t.UnixMilli()) / 1000))
}

// Utility functions

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
