package diagnostics

import (
	"fmt"
	"sort"
)

// Sink is the append-only diagnostics collection threaded through a
// single pass invocation (spec.md §4.4). It deduplicates by
// (line, column, kind) the way the teacher's walker.addError does,
// so a construct that is re-visited (e.g. a re-entered method body on
// an idempotent second pass) does not double-report.
type Sink struct {
	byKey map[string]*Diagnostic
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{byKey: make(map[string]*Diagnostic)}
}

// Add records a diagnostic, replacing any prior diagnostic with the
// same position and kind.
func (s *Sink) Add(d *Diagnostic) {
	key := fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Kind)
	s.byKey[key] = d
}

// All returns every recorded diagnostic, ordered by source location
// of emission (spec.md §7: "Diagnostics are ordered by source
// location-of-emission, not by severity").
func (s *Sink) All() []*Diagnostic {
	result := make([]*Diagnostic, 0, len(s.byKey))
	for _, d := range s.byKey {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		return result[i].Token.Column < result[j].Token.Column
	})
	return result
}

// Len reports how many distinct diagnostics are recorded.
func (s *Sink) Len() int {
	return len(s.byKey)
}

// Has reports whether a diagnostic of the given kind was recorded
// anywhere, used by tests that check "exactly one corresponding
// diagnostic" (spec.md §8) without pinning down a location.
func (s *Sink) Has(kind Kind) bool {
	for _, d := range s.byKey {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
