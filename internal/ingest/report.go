package ingest

import (
	"sync"
	"time"
)

// Outcome is the terminal state of one feed item
type Outcome string

const (
	OutcomePersisted        Outcome = "persisted"
	OutcomeSkippedNoImage   Outcome = "skipped_no_image"
	OutcomeSkippedNoContent Outcome = "skipped_no_content"
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"
	OutcomeFailed           Outcome = "failed"
)

// Decision records what happened to a single feed item
type Decision struct {
	Title   string  `json:"title"`
	Link    string  `json:"link"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// CategoryReport summarizes one category of a run. Error is set when the
// feed itself could not be read; Decisions is then empty.
type CategoryReport struct {
	Category  string          `json:"category"`
	Fetched   int             `json:"fetched"`
	Counts    map[Outcome]int `json:"counts"`
	Decisions []Decision      `json:"decisions"`
	Error     string          `json:"error,omitempty"`
}

func newCategoryReport(name string) CategoryReport {
	return CategoryReport{
		Category:  name,
		Counts:    make(map[Outcome]int),
		Decisions: []Decision{},
	}
}

func (c *CategoryReport) add(d Decision) {
	c.Decisions = append(c.Decisions, d)
	c.Counts[d.Outcome]++
}

// Report is the result of a full run over all categories
type Report struct {
	Limit      int              `json:"limit"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Totals     map[Outcome]int  `json:"totals"`
	Categories []CategoryReport `json:"categories"`
	Cancelled  bool             `json:"cancelled,omitempty"`
}

func (r *Report) addCategory(c CategoryReport) {
	r.Categories = append(r.Categories, c)
	for outcome, n := range c.Counts {
		r.Totals[outcome] += n
	}
}

// Failed returns the names of the categories whose feed could not be read
func (r *Report) Failed() []string {
	var names []string
	for _, c := range r.Categories {
		if c.Error != "" {
			names = append(names, c.Category)
		}
	}
	return names
}

// History keeps the most recent report for the HTTP API
type History struct {
	mu   sync.RWMutex
	last *Report
}

func (h *History) Store(r *Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = r
}

// Last returns the latest stored report, or nil before the first run
func (h *History) Last() *Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}
