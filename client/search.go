package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultSearchDelay is how long the searcher waits for the typing to settle.
const DefaultSearchDelay = 300 * time.Millisecond

// DonorResult is a donor row in the search dropdown.
type DonorResult struct {
	DonorID   int    `json:"donor_id"`
	DonorName string `json:"donor_name"`
	Email     string `json:"email"`
}

// StudentResult is a student row in the search dropdown.
type StudentResult struct {
	StudentID   int     `json:"student_id"`
	StudentName string  `json:"student_name"`
	Contact     *string `json:"contact"`
}

// SearchDonors queries the donor directory.
func (c *Client) SearchDonors(ctx context.Context, term string) ([]DonorResult, error) {
	var env dataEnvelope[[]DonorResult]
	path := "/api/v1/donors/search?searchTerm=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return FilterDonors(env.Data, term), nil
}

// SearchStudents queries the student directory.
func (c *Client) SearchStudents(ctx context.Context, term string) ([]StudentResult, error) {
	var env dataEnvelope[[]StudentResult]
	path := "/api/v1/students/search?searchTerm=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return FilterStudents(env.Data, term), nil
}

// FilterDonors re-filters backend results by case-insensitive substring on
// name or email, tolerating a backend that over-returns.
func FilterDonors(results []DonorResult, term string) []DonorResult {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return results
	}
	filtered := make([]DonorResult, 0, len(results))
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.DonorName), needle) ||
			strings.Contains(strings.ToLower(r.Email), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterStudents re-filters backend results by case-insensitive substring on
// name or contact.
func FilterStudents(results []StudentResult, term string) []StudentResult {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return results
	}
	filtered := make([]StudentResult, 0, len(results))
	for _, r := range results {
		contact := ""
		if r.Contact != nil {
			contact = *r.Contact
		}
		if strings.Contains(strings.ToLower(r.StudentName), needle) ||
			strings.Contains(strings.ToLower(contact), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// DebouncedSearcher coalesces keystrokes into one query per pause. Every
// Update restarts the single-shot timer, so only the latest term ever
// reaches the search function.
type DebouncedSearcher struct {
	delay  time.Duration
	search func(term string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncedSearcher wires a search callback behind a restartable timer.
// A zero delay falls back to DefaultSearchDelay.
func NewDebouncedSearcher(delay time.Duration, search func(term string)) *DebouncedSearcher {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &DebouncedSearcher{delay: delay, search: search}
}

// Update feeds the latest input value, superseding any pending query.
func (d *DebouncedSearcher) Update(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.search(term)
	})
}

// Stop cancels any pending query, e.g. when the dropdown closes.
func (d *DebouncedSearcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
