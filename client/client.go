// Package client implements the mobile-side waste report engine: draft
// submission, the paginated report feed and optimistic vote tracking, all on
// top of the REST API served by this repository.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"ecowastehunt-be/models"

	"github.com/sirupsen/logrus"
)

// TokenStore supplies the auth token the client replays on every request.
// The mobile app caches the token in device storage; tests and server-side
// callers use MemoryTokenStore.
type TokenStore interface {
	Token() string
	SetToken(token string)
}

// MemoryTokenStore is a TokenStore that keeps the token in memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Client talks to the waste report API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	log     *logrus.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, tokens TokenStore, log *logrus.Logger) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
		log:     log,
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("access-token", token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

// Login authenticates and stores the returned token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp struct {
		AccessToken string      `json:"accessToken"`
		User        models.User `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.AccessToken)
	return &resp.User, nil
}

// CreateReportRequest is the body of POST /waste-reports.
type CreateReportRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	WasteType   string          `json:"wasteType"`
	Severity    string          `json:"severity,omitempty"`
	Priority    int             `json:"priority,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Images      []string        `json:"images"`
}

// CreateWasteReport creates a report; images must already be hosted URLs.
func (c *Client) CreateWasteReport(ctx context.Context, payload CreateReportRequest) (*models.WasteReport, error) {
	var resp struct {
		Data models.WasteReport `json:"data"`
	}
	if err := c.postJSON(ctx, "/waste-reports", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ReportQuery holds the list parameters for the my-reports endpoint. Empty
// filter values are omitted from the request entirely.
type ReportQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	WasteType string
	Severity  string
	SortBy    string
	SortOrder string
}

// Values encodes the query, leaving out every empty optional parameter.
func (q ReportQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.WasteType != "" {
		v.Set("wasteType", q.WasteType)
	}
	if q.Severity != "" {
		v.Set("severity", q.Severity)
	}
	v.Set("sortBy", q.SortBy)
	v.Set("sortOrder", q.SortOrder)
	return v
}

// ReportPage is one page of the caller's reports.
type ReportPage struct {
	Data  []models.WasteReport `json:"data"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// MyWasteReports fetches one page of the caller's reports.
func (c *Client) MyWasteReports(ctx context.Context, q ReportQuery) (*ReportPage, error) {
	var page ReportPage
	path := "/waste-reports/user/my-reports?" + q.Values().Encode()
	if err := c.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ReportDetail is a single report plus the caller's current vote on it.
type ReportDetail struct {
	Report   models.WasteReport `json:"data"`
	UserVote models.VoteType    `json:"userVote"`
}

// WasteReportDetail fetches one report by ID.
func (c *Client) WasteReportDetail(ctx context.Context, reportID string) (*ReportDetail, error) {
	var detail ReportDetail
	if err := c.getJSON(ctx, "/waste-reports/"+url.PathEscape(reportID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// NearbyWasteReports lists reports within radius meters of a point.
// Coordinate order is longitude first, matching the stored pairs.
func (c *Client) NearbyWasteReports(ctx context.Context, longitude, latitude, radius float64) ([]models.WasteReport, error) {
	v := url.Values{}
	v.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	v.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	if radius > 0 {
		v.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	}
	var resp struct {
		Data []models.WasteReport `json:"data"`
	}
	if err := c.getJSON(ctx, "/waste-reports/nearby?"+v.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UploadedImage is one hosted file returned by the upload endpoint.
type UploadedImage struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
}

// UploadWasteImages sends all images in a single multipart request and
// returns the hosted URLs in submission order. More than 5 images is
// rejected before any bytes leave the device.
func (c *Client) UploadWasteImages(ctx context.Context, images []models.LocalImage) ([]UploadedImage, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > models.MaxReportImages {
		return nil, ErrTooManyImages
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, img := range images {
		f, err := os.Open(img.URI)
		if err != nil {
			return nil, fmt.Errorf("reading image %d: %w", img.ID, err)
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="image_%d.jpg"`, img.ID))
		header.Set("Content-Type", "image/jpeg")

		part, err := writer.CreatePart(header)
		if err != nil {
			f.Close()
			return nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, err
		}
		f.Close()
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var resp struct {
		Data []UploadedImage `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/uploads/waste-images", &buf, writer.FormDataContentType(), &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CastVote notifies the server of the caller's new vote state on a report.
func (c *Client) CastVote(ctx context.Context, reportID string, vote models.VoteType) error {
	payload := map[string]string{"voteType": string(vote)}
	return c.postJSON(ctx, "/waste-reports/"+url.PathEscape(reportID)+"/vote", payload, nil)
}
