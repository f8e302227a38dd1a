package domain

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ProcessingStatus is the processing stage of an indexed document.
type ProcessingStatus int

const (
	StatusPending    ProcessingStatus = 0
	StatusProcessing ProcessingStatus = 1
	StatusCompleted  ProcessingStatus = 2
	StatusFailed     ProcessingStatus = 3

	// StatusUnknown stands in for any value that is not a recognized code.
	StatusUnknown ProcessingStatus = -1
)

// StatusCategory is the coarse severity bucket used for badge styling.
type StatusCategory string

const (
	CategoryInfo    StatusCategory = "info"
	CategoryWarning StatusCategory = "warning"
	CategorySuccess StatusCategory = "success"
	CategoryDanger  StatusCategory = "danger"
)

// LabelUnknown is the display text for unrecognized codes.
const LabelUnknown = "Unknown"

// StatusDescriptor pairs a status code with its category and display label.
type StatusDescriptor struct {
	Code     ProcessingStatus
	Name     string
	Category StatusCategory
	Label    string
}

// Describe returns the descriptor for code. Every int resolves to exactly one
// descriptor; unrecognized codes get the info category and the Unknown label.
func Describe(code ProcessingStatus) StatusDescriptor {
	switch code {
	case StatusPending:
		return StatusDescriptor{Code: code, Name: "pending", Category: CategoryInfo, Label: "Pending processing"}
	case StatusProcessing:
		return StatusDescriptor{Code: code, Name: "processing", Category: CategoryWarning, Label: "Processing"}
	case StatusCompleted:
		return StatusDescriptor{Code: code, Name: "completed", Category: CategorySuccess, Label: "Completed"}
	case StatusFailed:
		return StatusDescriptor{Code: code, Name: "failed", Category: CategoryDanger, Label: "Failed"}
	default:
		return StatusDescriptor{Code: code, Name: "unknown", Category: CategoryInfo, Label: LabelUnknown}
	}
}

// Classify returns the category tag for code.
func Classify(code ProcessingStatus) StatusCategory {
	return Describe(code).Category
}

// Label returns the human-readable label for code.
func Label(code ProcessingStatus) string {
	return Describe(code).Label
}

// String implements fmt.Stringer.
func (s ProcessingStatus) String() string {
	return Label(s)
}

// Known reports whether s is one of the recognized codes.
func (s ProcessingStatus) Known() bool {
	return Describe(s).Label != LabelUnknown
}

// KnownStatuses lists the recognized codes in lifecycle order.
func KnownStatuses() []ProcessingStatus {
	return []ProcessingStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

// StatusFromValue resolves a loosely typed value, usually decoded from JSON,
// to a status code. Integral numbers keep their value. Anything else,
// including nil, strings and fractional numbers, resolves to StatusUnknown.
func StatusFromValue(v any) ProcessingStatus {
	switch n := v.(type) {
	case ProcessingStatus:
		return n
	case int:
		return fromInt64(int64(n))
	case int64:
		return fromInt64(n)
	case float64:
		return fromFloat(n)
	case interface{ Int64() (int64, error) }:
		// json.Number
		if i, err := n.Int64(); err == nil {
			return fromInt64(i)
		}
		if f, ok := v.(interface{ Float64() (float64, error) }); ok {
			if x, err := f.Float64(); err == nil {
				return fromFloat(x)
			}
		}
		return StatusUnknown
	default:
		return fromKind(reflect.ValueOf(v))
	}
}

// fromKind covers the remaining numeric kinds, named types included.
func fromKind(rv reflect.Value) ProcessingStatus {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt32 {
			return ProcessingStatus(u)
		}
		return StatusUnknown
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float())
	default:
		return StatusUnknown
	}
}

func fromInt64(n int64) ProcessingStatus {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return StatusUnknown
	}
	return ProcessingStatus(n)
}

func fromFloat(f float64) ProcessingStatus {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return StatusUnknown
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return StatusUnknown
	}
	return ProcessingStatus(int64(f))
}

// ParseStatusName accepts a machine name ("failed"), a display label
// ("Pending processing", case-insensitive) or a decimal code ("3").
func ParseStatusName(s string) (ProcessingStatus, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		code := ProcessingStatus(n)
		if !code.Known() {
			return StatusUnknown, fmt.Errorf("%w: %d", ErrUnknownStatus, n)
		}
		return code, nil
	}
	for _, code := range KnownStatuses() {
		d := Describe(code)
		if strings.EqualFold(trimmed, d.Name) || strings.EqualFold(trimmed, d.Label) {
			return code, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}
