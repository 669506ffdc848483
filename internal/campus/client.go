package campus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domerrors "github.com/smartcampus/campusai-go/internal/errors"
	"github.com/smartcampus/campusai-go/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// maxResponseBytes caps backend response bodies. The largest legitimate
// payload (the full library catalog) stays well under this.
const maxResponseBytes = 4 << 20

// Client is an HTTP client for the campus backend data service.
// Every query is read-only, bounded by a fixed timeout, and never retried.
// Concurrent identical queries are collapsed via singleflight.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.Metrics
	group      singleflight.Group
}

// NewClient creates a backend client. metrics may be nil (e.g. in tests).
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: baseURL,
		metrics: m,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping issues a minimal request to the backend root to check reachability.
// Any response, regardless of status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domerrors.NewGatewayError("/", 0, err)
	}
	_ = resp.Body.Close()
	return nil
}

// getJSON performs a GET against the backend and decodes the JSON response
// into out. The query name labels metrics. Identical in-flight requests are
// deduplicated; followers receive a copy of the leader's raw payload.
func (c *Client) getJSON(ctx context.Context, queryName, path string, params url.Values, out any) error {
	key := path
	if len(params) > 0 {
		key = path + "?" + params.Encode()
	}

	start := time.Now()
	raw, err, shared := c.group.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		return c.fetch(ctx, path, params)
	})

	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordGatewayRequest(queryName, status, time.Since(start).Seconds())
		if shared {
			c.metrics.RecordSingleflightDedup(queryName)
		}
	}
	if err != nil {
		return err
	}

	body, ok := raw.([]byte)
	if !ok {
		return domerrors.NewGatewayError(path, 0, fmt.Errorf("unexpected payload type %T", raw))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domerrors.NewGatewayError(path, 0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// fetch performs the actual HTTP round trip and returns the raw body.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, domerrors.NewGatewayError(path, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domerrors.NewGatewayError(path, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domerrors.NewGatewayError(path, resp.StatusCode, fmt.Errorf("unexpected status"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domerrors.NewGatewayError(path, resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	return body, nil
}

// Attendance returns the per-subject attendance records for a student.
func (c *Client) Attendance(ctx context.Context, studentID string) ([]SubjectAttendance, error) {
	params := url.Values{"studentId": {studentID}}
	var records []SubjectAttendance
	if err := c.getJSON(ctx, "attendance", "/api/attendance", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AttendanceSummary returns the subject-wise breakdown with overall
// percentage used by the leave advisor.
func (c *Client) AttendanceSummary(ctx context.Context, studentID, branch, semester string) (*AttendanceSummary, error) {
	params := url.Values{"studentId": {studentID}}
	if branch != "" {
		params.Set("branch", branch)
	}
	if semester != "" {
		params.Set("semester", semester)
	}
	var summary AttendanceSummary
	if err := c.getJSON(ctx, "attendance_summary", "/api/attendance/summary", params, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Assignments returns assignments, optionally filtered server-side by
// branch and semester.
func (c *Client) Assignments(ctx context.Context, branch, semester string) ([]Assignment, error) {
	params := url.Values{}
	if branch != "" {
		params.Set("branch", branch)
	}
	if semester != "" {
		params.Set("semester", semester)
	}
	var assignments []Assignment
	if err := c.getJSON(ctx, "assignments", "/api/assignments", params, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// OpenPlacements returns all placement drives with open status.
func (c *Client) OpenPlacements(ctx context.Context) ([]PlacementDrive, error) {
	params := url.Values{"status": {"open"}}
	var drives []PlacementDrive
	if err := c.getJSON(ctx, "placements", "/api/placements", params, &drives); err != nil {
		return nil, err
	}
	return drives, nil
}

// Books returns the full library catalog.
func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.getJSON(ctx, "library_books", "/api/library/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// BorrowedBooks returns the books currently borrowed by a student.
func (c *Client) BorrowedBooks(ctx context.Context, studentID string) ([]BorrowedBook, error) {
	params := url.Values{"studentId": {studentID}}
	var books []BorrowedBook
	if err := c.getJSON(ctx, "library_my_books", "/api/library/my-books", params, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Hostel returns all hostel room records.
func (c *Client) Hostel(ctx context.Context) ([]HostelRoom, error) {
	var rooms []HostelRoom
	if err := c.getJSON(ctx, "hostel", "/api/hostel", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Finance returns the fee records for a student.
func (c *Client) Finance(ctx context.Context, studentID string) ([]FeeRecord, error) {
	params := url.Values{"studentId": {studentID}}
	var records []FeeRecord
	if err := c.getJSON(ctx, "finance", "/api/finance", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}
