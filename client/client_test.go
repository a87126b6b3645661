package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ecowastehunt-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadWasteImages_RejectsMoreThanFiveBeforeSending(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer srv.Close()

	api := New(srv.URL, nil, nil)

	images := make([]models.LocalImage, 6)
	_, err := api.UploadWasteImages(context.Background(), images)

	require.ErrorIs(t, err, ErrTooManyImages)
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestUploadWasteImages_RejectsEmpty(t *testing.T) {
	api := New("http://unreachable.invalid", nil, nil)
	_, err := api.UploadWasteImages(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoImages)
}

func TestClient_SendsAccessTokenHeader(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("access-token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0,"page":1,"limit":10}`))
	}))
	defer srv.Close()

	tokens := &MemoryTokenStore{}
	tokens.SetToken("jwt-abc")
	api := New(srv.URL, tokens, nil)

	_, err := api.MyWasteReports(context.Background(), ReportQuery{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", gotToken)
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken":"fresh-token","user":{"name":"Lan","email":"lan@example.com"}}`))
	}))
	defer srv.Close()

	tokens := &MemoryTokenStore{}
	api := New(srv.URL, tokens, nil)

	user, err := api.Login(context.Background(), "lan@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Lan", user.Name)
	assert.Equal(t, "fresh-token", tokens.Token())
}

func TestReportQuery_OmitsEmptyParameters(t *testing.T) {
	q := ReportQuery{
		Page:      2,
		Limit:     10,
		Search:    "   ",
		Status:    "",
		WasteType: "organic",
		SortBy:    "createdAt",
		SortOrder: "desc",
	}
	v := q.Values()

	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "organic", v.Get("wasteType"))
	_, hasSearch := v["search"]
	_, hasStatus := v["status"]
	_, hasSeverity := v["severity"]
	assert.False(t, hasSearch, "blank search is omitted")
	assert.False(t, hasStatus)
	assert.False(t, hasSeverity)
}

func TestClient_SurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer srv.Close()

	api := New(srv.URL, nil, nil)

	_, err := api.CreateWasteReport(context.Background(), CreateReportRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}
