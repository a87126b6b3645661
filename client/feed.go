package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ecowastehunt-be/models"

	"github.com/sirupsen/logrus"
)

const (
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
	defaultPageLimit = 10
	defaultDebounce  = 500 * time.Millisecond
)

// Filters narrows the report feed; the empty string means "no constraint".
type Filters struct {
	Status    string
	WasteType string
	Severity  string
}

// Pagination tracks the feed's position within the full result set.
type Pagination struct {
	Page    int
	Limit   int
	Total   int
	HasMore bool
}

// ReportFeed is the filterable, sortable, infinitely-scrollable list of the
// current user's reports. One feed instance belongs to one screen; all state
// lives behind its mutex because the debounce timer fires on another
// goroutine.
//
// Each Load bumps a request generation and responses from superseded loads
// are discarded, so a slow stale page can never overwrite fresher data.
type ReportFeed struct {
	mu sync.Mutex

	api *Client
	log *logrus.Logger

	reports     []models.WasteReport
	filters     Filters
	sortBy      string
	sortOrder   string
	searchQuery string
	pagination  Pagination

	loading    bool
	generation uint64

	debounce      *time.Timer
	debounceDelay time.Duration
}

func NewReportFeed(api *Client, log *logrus.Logger) *ReportFeed {
	if log == nil {
		log = logrus.New()
	}
	return &ReportFeed{
		api:           api,
		log:           log,
		sortBy:        defaultSortBy,
		sortOrder:     defaultSortOrder,
		pagination:    Pagination{Page: 1, Limit: defaultPageLimit, HasMore: true},
		debounceDelay: defaultDebounce,
	}
}

// SetDebounce overrides the search debounce delay.
func (f *ReportFeed) SetDebounce(d time.Duration) {
	f.mu.Lock()
	f.debounceDelay = d
	f.mu.Unlock()
}

// Load fetches one page of reports. With reset the feed starts over at page 1
// and the response replaces the list; otherwise the response page is appended
// in arrival order. Client-side re-sorting never happens; ordering is fully
// delegated to sortBy/sortOrder on the request.
func (f *ReportFeed) Load(ctx context.Context, reset bool) error {
	f.mu.Lock()
	if reset {
		f.pagination.Page = 1
		f.pagination.HasMore = true
	}
	f.generation++
	gen := f.generation
	f.loading = true
	q := ReportQuery{
		Page:      f.pagination.Page,
		Limit:     f.pagination.Limit,
		Search:    strings.TrimSpace(f.searchQuery),
		Status:    f.filters.Status,
		WasteType: f.filters.WasteType,
		Severity:  f.filters.Severity,
		SortBy:    f.sortBy,
		SortOrder: f.sortOrder,
	}
	f.mu.Unlock()

	page, err := f.api.MyWasteReports(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// a newer load superseded this request
		f.log.WithField("generation", gen).Debug("discarding stale report page")
		return nil
	}
	f.loading = false

	if err != nil {
		return &FetchError{Err: err}
	}

	if reset {
		f.reports = page.Data
	} else {
		f.reports = append(f.reports, page.Data...)
	}

	if page.Limit > 0 {
		f.pagination.Limit = page.Limit
	}
	if page.Page > 0 {
		f.pagination.Page = page.Page
	}
	f.pagination.Total = page.Total

	// A short page is always the last page, even when total claims otherwise.
	returned := len(page.Data)
	f.pagination.HasMore = returned == f.pagination.Limit &&
		f.pagination.Page*f.pagination.Limit < page.Total

	return nil
}

// LoadMore fetches the next page. It is a no-op while a load is in flight or
// when the last page has been reached.
func (f *ReportFeed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.pagination.HasMore {
		f.mu.Unlock()
		return nil
	}
	f.pagination.Page++
	f.mu.Unlock()

	return f.Load(ctx, false)
}

// UpdateFilter mutates one filter or sort field and reloads from page 1.
// Rapid successive calls each trigger their own reload; the generation check
// in Load keeps the latest response authoritative.
func (f *ReportFeed) UpdateFilter(ctx context.Context, key, value string) error {
	f.mu.Lock()
	switch key {
	case "status":
		f.filters.Status = value
	case "wasteType":
		f.filters.WasteType = value
	case "severity":
		f.filters.Severity = value
	case "sortBy":
		f.sortBy = value
	case "sortOrder":
		f.sortOrder = value
	default:
		f.mu.Unlock()
		return fmt.Errorf("unknown filter %q", key)
	}
	f.mu.Unlock()

	return f.Load(ctx, true)
}

// ResetFilters restores every filter, sort field and the search text to its
// default and reloads.
func (f *ReportFeed) ResetFilters(ctx context.Context) error {
	f.mu.Lock()
	f.filters = Filters{}
	f.sortBy = defaultSortBy
	f.sortOrder = defaultSortOrder
	f.searchQuery = ""
	if f.debounce != nil {
		f.debounce.Stop()
	}
	f.mu.Unlock()

	return f.Load(ctx, true)
}

// SetSearchQuery records the search text and (re)arms the debounce timer.
// The reload only fires once typing pauses for the debounce delay, and only
// when the search text or some filter differs from its default.
func (f *ReportFeed) SetSearchQuery(text string) {
	f.mu.Lock()
	f.searchQuery = text
	if f.debounce != nil {
		f.debounce.Stop()
	}
	f.debounce = time.AfterFunc(f.debounceDelay, func() {
		f.mu.Lock()
		fire := strings.TrimSpace(f.searchQuery) != "" || f.dirtyLocked()
		f.mu.Unlock()
		if !fire {
			return
		}
		if err := f.Load(context.Background(), true); err != nil {
			f.log.WithError(err).Warn("search reload failed")
		}
	})
	f.mu.Unlock()
}

func (f *ReportFeed) dirtyLocked() bool {
	return f.filters.Status != "" || f.filters.WasteType != "" || f.filters.Severity != "" ||
		f.sortBy != defaultSortBy || f.sortOrder != defaultSortOrder
}

// ActiveFilterCount counts every filter/sort field that differs from its
// default, plus one for a non-empty search. Drives the filter badge and the
// empty-state wording.
func (f *ReportFeed) ActiveFilterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	if f.filters.Status != "" {
		count++
	}
	if f.filters.WasteType != "" {
		count++
	}
	if f.filters.Severity != "" {
		count++
	}
	if f.sortBy != defaultSortBy {
		count++
	}
	if f.sortOrder != defaultSortOrder {
		count++
	}
	if strings.TrimSpace(f.searchQuery) != "" {
		count++
	}
	return count
}

// Reports returns a snapshot of the loaded reports.
func (f *ReportFeed) Reports() []models.WasteReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WasteReport, len(f.reports))
	copy(out, f.reports)
	return out
}

// Pagination returns the current pagination state.
func (f *ReportFeed) Pagination() Pagination {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pagination
}

// SearchQuery returns the current search text.
func (f *ReportFeed) SearchQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchQuery
}

// Filters returns the current filter values.
func (f *ReportFeed) Filters() Filters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters
}
