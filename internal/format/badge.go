package format

import "docstatus/internal/domain"

// Badge is the presentation form of a processing status.
type Badge struct {
	Status domain.ProcessingStatus `json:"status"`
	Type   domain.StatusCategory   `json:"type"`
	Text   string                  `json:"text"`
}

// NewBadge builds the badge for code.
func NewBadge(code domain.ProcessingStatus) Badge {
	d := domain.Describe(code)
	return Badge{Status: d.Code, Type: d.Category, Text: d.Label}
}

// Badges lists the badge of every recognized status, in lifecycle order.
// The front end uses it to build its status filter.
func Badges() []Badge {
	known := domain.KnownStatuses()
	out := make([]Badge, 0, len(known))
	for _, code := range known {
		out = append(out, NewBadge(code))
	}
	return out
}
