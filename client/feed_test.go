package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"ecowastehunt-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageResponse struct {
	Message string               `json:"message"`
	Data    []models.WasteReport `json:"data"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}

func reportsNamed(titles ...string) []models.WasteReport {
	out := make([]models.WasteReport, len(titles))
	for i, title := range titles {
		out[i] = models.WasteReport{Title: title}
	}
	return out
}

// feedServer records every query string it receives and replies with the
// response the test enqueued for that call.
type feedServer struct {
	mu        sync.Mutex
	queries   []url.Values
	responses []pageResponse
	srv       *httptest.Server
}

func newFeedServer(t *testing.T, responses ...pageResponse) *feedServer {
	t.Helper()
	fs := &feedServer{responses: responses}
	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.queries = append(fs.queries, r.URL.Query())
		var resp pageResponse
		if len(fs.responses) > 0 {
			resp = fs.responses[0]
			if len(fs.responses) > 1 {
				fs.responses = fs.responses[1:]
			}
		}
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) callCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.queries)
}

func (fs *feedServer) lastQuery() url.Values {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.queries) == 0 {
		return nil
	}
	return fs.queries[len(fs.queries)-1]
}

func TestLoad_ShortPageMeansNoMore(t *testing.T) {
	// 3 items back with limit 10: last page even though total says otherwise
	fs := newFeedServer(t, pageResponse{
		Data: reportsNamed("a", "b", "c"), Total: 100, Page: 1, Limit: 10,
	})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.Load(context.Background(), true))

	assert.False(t, feed.Pagination().HasMore)
	assert.Len(t, feed.Reports(), 3)
}

func TestLoad_FullPageBelowTotalHasMore(t *testing.T) {
	fs := newFeedServer(t, pageResponse{
		Data: reportsNamed("a", "b"), Total: 5, Page: 1, Limit: 2,
	})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.Load(context.Background(), true))

	assert.True(t, feed.Pagination().HasMore)
}

func TestLoadMore_AppendsWithoutReordering(t *testing.T) {
	fs := newFeedServer(t,
		pageResponse{Data: reportsNamed("p1-a", "p1-b"), Total: 4, Page: 1, Limit: 2},
		pageResponse{Data: reportsNamed("p2-a", "p2-b"), Total: 4, Page: 2, Limit: 2},
	)
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.Load(context.Background(), true))
	require.True(t, feed.Pagination().HasMore)

	require.NoError(t, feed.LoadMore(context.Background()))

	titles := make([]string, 0, 4)
	for _, r := range feed.Reports() {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"p1-a", "p1-b", "p2-a", "p2-b"}, titles)
	assert.False(t, feed.Pagination().HasMore, "page 2 of 2 exhausts the set")
	assert.Equal(t, "2", fs.lastQuery().Get("page"))
}

func TestLoadMore_NoopWhenExhausted(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Data: reportsNamed("only"), Total: 1, Page: 1, Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.Load(context.Background(), true))
	calls := fs.callCount()

	require.NoError(t, feed.LoadMore(context.Background()))
	assert.Equal(t, calls, fs.callCount())
}

func TestUpdateFilter_ClearedFilterIsOmittedFromRequest(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.UpdateFilter(context.Background(), "status", "resolved"))
	assert.Equal(t, "resolved", fs.lastQuery().Get("status"))

	require.NoError(t, feed.UpdateFilter(context.Background(), "status", ""))
	_, present := fs.lastQuery()["status"]
	assert.False(t, present, "empty filter must be omitted, not sent blank")
}

func TestUpdateFilter_UnknownKey(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	assert.Error(t, feed.UpdateFilter(context.Background(), "color", "green"))
	assert.Equal(t, 0, fs.callCount())
}

func TestSetSearchQuery_DebouncesToSingleLoad(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)
	feed.SetDebounce(30 * time.Millisecond)

	for _, text := range []string{"p", "pl", "pla", "plas", "plastic"} {
		feed.SetSearchQuery(text)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fs.callCount() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 1, fs.callCount(), "only the final keystroke fires a load")
	assert.Equal(t, "plastic", fs.lastQuery().Get("search"))
}

func TestSetSearchQuery_NoLoadWhenEverythingDefault(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)
	feed.SetDebounce(10 * time.Millisecond)

	feed.SetSearchQuery("")
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, fs.callCount())
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		title := "fresh"
		if n == 1 {
			<-release
			title = "stale"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"title":%q}],"total":1,"page":1,"limit":10}`, title)
	}))
	defer srv.Close()

	feed := NewReportFeed(New(srv.URL, nil, nil), nil)

	done := make(chan error, 1)
	go func() { done <- feed.Load(context.Background(), true) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, feed.Load(context.Background(), true))
	close(release)
	require.NoError(t, <-done)

	reports := feed.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "fresh", reports[0].Title, "stale page must not overwrite fresher data")
}

func TestActiveFilterCount(t *testing.T) {
	fs := newFeedServer(t, pageResponse{Limit: 10})
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	assert.Equal(t, 0, feed.ActiveFilterCount())

	require.NoError(t, feed.UpdateFilter(context.Background(), "status", "pending"))
	require.NoError(t, feed.UpdateFilter(context.Background(), "sortBy", "priority"))
	feed.SetSearchQuery("couch")

	assert.Equal(t, 3, feed.ActiveFilterCount())

	require.NoError(t, feed.ResetFilters(context.Background()))
	assert.Equal(t, 0, feed.ActiveFilterCount())
}

func TestResetLoadReplacesList(t *testing.T) {
	fs := newFeedServer(t,
		pageResponse{Data: reportsNamed("old-a", "old-b"), Total: 2, Page: 1, Limit: 10},
		pageResponse{Data: reportsNamed("new-a"), Total: 1, Page: 1, Limit: 10},
	)
	feed := NewReportFeed(New(fs.srv.URL, nil, nil), nil)

	require.NoError(t, feed.Load(context.Background(), true))
	require.Len(t, feed.Reports(), 2)

	require.NoError(t, feed.Load(context.Background(), true))
	reports := feed.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "new-a", reports[0].Title)
}
