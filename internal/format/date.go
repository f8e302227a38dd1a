package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"docstatus/internal/config"
)

const (
	// Placeholder is rendered in place of a missing date.
	Placeholder = "-"

	// InvalidDate is rendered for a date that is present but cannot be parsed.
	InvalidDate = "Invalid Date"

	// DefaultLocale matches the locale the document manager UI was built for.
	DefaultLocale = "zh-CN"

	// DefaultTimezone is used when no timezone is configured.
	DefaultTimezone = "Asia/Shanghai"

	// maxEpochMillis is the largest magnitude an ECMAScript Date accepts.
	maxEpochMillis = 8.64e15
)

var (
	ErrUnsupportedLocale = errors.New("unsupported locale")

	errNotADate = errors.New("not a date")
)

// hourToken stands for the 24-hour clock hour without zero padding, which
// time.Format has no verb for. No layout element starts with '{'.
const hourToken = "{H}"

// localeLayouts maps a locale tag to its long date/time layout.
var localeLayouts = map[string]string{
	"zh-CN": "2006/1/2 15:04:05",
	"en-US": "1/2/2006, 3:04:05 PM",
	"en-GB": "02/01/2006, 15:04:05",
	"de-DE": "2.1.2006, 15:04:05",
	"ja-JP": "2006/1/2 " + hourToken + ":04:05",
	"iso":   "2006-01-02 15:04:05",
}

// zonedLayouts carry their own offset; localLayouts are read in the
// formatter's location. Date-only strings are UTC midnight.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05Z0700", time.RFC1123Z, time.RFC1123}
	localLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006/01/02 15:04:05", "2006/1/2 15:04:05"}
	dateLayouts  = []string{"2006-01-02", "2006/01/02"}
)

// SupportedLocales returns the locale tags NewDateFormatter accepts.
func SupportedLocales() []string {
	out := make([]string, 0, len(localeLayouts))
	for tag := range localeLayouts {
		out = append(out, tag)
	}
	return out
}

// DateFormatter renders nullable timestamps in a locale's long date/time form.
// It is immutable and safe for concurrent use.
type DateFormatter struct {
	locale      string
	layout      string
	location    *time.Location
	placeholder string
}

// NewDateFormatter builds a formatter from the format section of the config.
// Empty fields fall back to the defaults.
func NewDateFormatter(cfg *config.FormatConfig) (*DateFormatter, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	layout, ok := lookupLayout(locale)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = Placeholder
	}

	return &DateFormatter{
		locale:      locale,
		layout:      layout,
		location:    loc,
		placeholder: placeholder,
	}, nil
}

func lookupLayout(locale string) (string, bool) {
	if layout, ok := localeLayouts[locale]; ok {
		return layout, true
	}
	// Accept "zh_cn" or "EN-us" style spellings.
	norm := strings.ReplaceAll(locale, "_", "-")
	for tag, layout := range localeLayouts {
		if strings.EqualFold(tag, norm) {
			return layout, true
		}
	}
	return "", false
}

// Locale returns the locale tag the formatter renders in.
func (f *DateFormatter) Locale() string { return f.locale }

// Location returns the timezone timestamps are converted to before rendering.
func (f *DateFormatter) Location() *time.Location { return f.location }

// Placeholder returns the text shown for missing dates.
func (f *DateFormatter) Placeholder() string { return f.placeholder }

// Format renders t, or the placeholder when t is nil or the zero time.
func (f *DateFormatter) Format(t *time.Time) string {
	if t == nil || t.IsZero() {
		return f.placeholder
	}
	return f.render(*t)
}

// FormatValue renders a loosely typed date value. Falsy values (nil, "",
// numeric zero, NaN, false) render as the placeholder. Numbers are
// milliseconds since the Unix epoch. Values that are present but cannot be
// interpreted as a date render as InvalidDate.
func (f *DateFormatter) FormatValue(v any) string {
	t, ok, err := f.Resolve(v)
	if err != nil {
		return InvalidDate
	}
	if !ok {
		return f.placeholder
	}
	return f.render(t)
}

// FormatString parses s as a timestamp and renders it. An empty string is
// missing; an unparseable one renders as InvalidDate.
func (f *DateFormatter) FormatString(s string) string {
	return f.FormatValue(s)
}

// FormatMillis renders a millisecond Unix timestamp. Zero is missing.
func (f *DateFormatter) FormatMillis(ms int64) string {
	return f.FormatValue(ms)
}

// Resolve interprets v as an instant. ok is false when v is missing (see
// FormatValue for what counts as missing); err is set when v is present but
// is not a date.
func (f *DateFormatter) Resolve(v any) (t time.Time, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return x, !x.IsZero(), nil
	case *time.Time:
		if x == nil {
			return time.Time{}, false, nil
		}
		return *x, !x.IsZero(), nil
	case string:
		return f.resolveString(x)
	case *string:
		if x == nil {
			return time.Time{}, false, nil
		}
		return f.resolveString(*x)
	case bool:
		if !x {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("%w: boolean", errNotADate)
	case int:
		return resolveMillis(int64(x))
	case int64:
		return resolveMillis(x)
	case *int64:
		if x == nil {
			return time.Time{}, false, nil
		}
		return resolveMillis(*x)
	case float64:
		return resolveFloatMillis(x)
	case json.Number:
		if x == "" {
			return time.Time{}, false, nil
		}
		ms, perr := x.Float64()
		if perr != nil {
			return time.Time{}, false, fmt.Errorf("%w: %v", errNotADate, perr)
		}
		return resolveFloatMillis(ms)
	default:
		return resolveNumber(v)
	}
}

// resolveNumber handles the remaining integer and float kinds, named types
// included.
func resolveNumber(v any) (time.Time, bool, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return resolveMillis(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return time.Time{}, false, fmt.Errorf("%w: %d out of range", errNotADate, u)
		}
		return resolveMillis(int64(u))
	case reflect.Float32, reflect.Float64:
		return resolveFloatMillis(rv.Float())
	default:
		return time.Time{}, false, fmt.Errorf("%w: unsupported type %T", errNotADate, v)
	}
}

func (f *DateFormatter) resolveString(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := f.Parse(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func resolveMillis(ms int64) (time.Time, bool, error) {
	if ms == 0 {
		return time.Time{}, false, nil
	}
	if ms > maxEpochMillis || ms < -maxEpochMillis {
		return time.Time{}, false, fmt.Errorf("%w: %d ms out of range", errNotADate, ms)
	}
	return time.UnixMilli(ms), true, nil
}

func resolveFloatMillis(ms float64) (time.Time, bool, error) {
	if ms == 0 || math.IsNaN(ms) {
		return time.Time{}, false, nil
	}
	if math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false, fmt.Errorf("%w: %g ms out of range", errNotADate, ms)
	}
	return time.UnixMilli(int64(math.Trunc(ms))), true, nil
}

// Parse reads s with the layouts the document manager emits. Strings with an
// offset keep it, strings without one are read in the formatter's location,
// and date-only strings are UTC midnight.
func (f *DateFormatter) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.location); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized layout %q", errNotADate, s)
}

func (f *DateFormatter) render(t time.Time) string {
	t = t.In(f.location)
	out := t.Format(f.layout)
	if strings.Contains(f.layout, hourToken) {
		out = strings.Replace(out, hourToken, strconv.Itoa(t.Hour()), 1)
	}
	return out
}
