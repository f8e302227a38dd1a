package format

import (
	"time"
	// Embedded zone database so DefaultTimezone resolves on minimal images.
	_ "time/tzdata"

	"docstatus/internal/domain"
)

var defaultFormatter = newDefaultFormatter()

func newDefaultFormatter() *DateFormatter {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &DateFormatter{
		locale:      DefaultLocale,
		layout:      localeLayouts[DefaultLocale],
		location:    loc,
		placeholder: Placeholder,
	}
}

// Default returns the formatter FormatDate uses.
func Default() *DateFormatter {
	return defaultFormatter
}

// FormatDate renders v with the default formatter.
func FormatDate(v any) string {
	return defaultFormatter.FormatValue(v)
}

// ClassifyStatus returns the badge category for a loosely typed status code.
func ClassifyStatus(v any) domain.StatusCategory {
	return domain.Classify(domain.StatusFromValue(v))
}

// StatusLabel returns the display label for a loosely typed status code.
func StatusLabel(v any) string {
	return domain.Label(domain.StatusFromValue(v))
}
