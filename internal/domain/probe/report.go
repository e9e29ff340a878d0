package probe

import "sort"

// Report is the ordered result of one probe run.
type Report struct {
	Submitted int       `json:"submitted" yaml:"submitted"`
	Outcomes  []Outcome `json:"results" yaml:"results"`
}

// NewReport sorts outcomes into presentation order: known scope first, then
// extended, each alphabetical by domain. The input slice is not modified.
func NewReport(submitted int, outcomes []Outcome) Report {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	SortOutcomes(sorted)
	return Report{
		Submitted: submitted,
		Outcomes:  sorted,
	}
}

// SortOutcomes orders outcomes in place by scope then domain.
func SortOutcomes(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].Scope != outcomes[j].Scope {
			return outcomes[i].Scope < outcomes[j].Scope
		}
		return outcomes[i].Domain < outcomes[j].Domain
	})
}

// Complete reports whether every submitted domain produced an outcome.
func (r Report) Complete() bool {
	return len(r.Outcomes) == r.Submitted
}

// Counts returns pass and fail totals.
func (r Report) Counts() (passed, failed int) {
	for _, o := range r.Outcomes {
		if o.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// AllKnownPassed is the only verdict packaging consumes: the run finished,
// contained at least one known-scope domain, and all of them passed.
func (r Report) AllKnownPassed() bool {
	if !r.Complete() {
		return false
	}
	known := 0
	for _, o := range r.Outcomes {
		if o.Scope != ScopeKnown {
			continue
		}
		known++
		if !o.Passed() {
			return false
		}
	}
	return known > 0
}

// FailedKnown lists known-scope domains that did not pass.
func (r Report) FailedKnown() []string {
	var failed []string
	for _, o := range r.Outcomes {
		if o.Scope == ScopeKnown && !o.Passed() {
			failed = append(failed, o.Domain)
		}
	}
	return failed
}
