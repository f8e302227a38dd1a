package report

import "docstatus/internal/domain"

// StatusCount is the number of documents in one status.
type StatusCount struct {
	Descriptor domain.StatusDescriptor
	Count      int
}

// Summary counts documents per status. Counts lists every recognized status
// in lifecycle order, followed by Unknown when any row had an unrecognized code.
type Summary struct {
	Total  int
	Counts []StatusCount
}

// Count returns the number of documents with the given status.
// Any unrecognized code returns the unknown bucket.
func (s Summary) Count(code domain.ProcessingStatus) int {
	if !code.Known() {
		code = domain.StatusUnknown
	}
	for _, c := range s.Counts {
		if c.Descriptor.Code == code {
			return c.Count
		}
	}
	return 0
}

// Summarize tallies docs by status.
func Summarize(docs []domain.Document) Summary {
	known := domain.KnownStatuses()
	byCode := make(map[domain.ProcessingStatus]int, len(known))
	unknown := 0
	for i := range docs {
		if docs[i].Status.Known() {
			byCode[docs[i].Status]++
		} else {
			unknown++
		}
	}

	s := Summary{Total: len(docs), Counts: make([]StatusCount, 0, len(known)+1)}
	for _, code := range known {
		s.Counts = append(s.Counts, StatusCount{Descriptor: domain.Describe(code), Count: byCode[code]})
	}
	if unknown > 0 {
		s.Counts = append(s.Counts, StatusCount{Descriptor: domain.Describe(domain.StatusUnknown), Count: unknown})
	}
	return s
}

// Filter returns the documents whose status is one of statuses. With no
// statuses every document is returned. Passing StatusUnknown selects every
// unrecognized code.
func Filter(docs []domain.Document, statuses ...domain.ProcessingStatus) []domain.Document {
	if len(statuses) == 0 {
		return docs
	}
	want := make(map[domain.ProcessingStatus]bool, len(statuses))
	for _, s := range statuses {
		if !s.Known() {
			s = domain.StatusUnknown
		}
		want[s] = true
	}

	out := make([]domain.Document, 0, len(docs))
	for i := range docs {
		code := docs[i].Status
		if !code.Known() {
			code = domain.StatusUnknown
		}
		if want[code] {
			out = append(out, docs[i])
		}
	}
	return out
}
