package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/progress"
	"github.com/claude/workouttracker/internal/tracker"
)

// HTTPClient implements DataSource by calling the tracker REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the tracker runs elsewhere (for example on a tailnet).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Workouts(ctx context.Context) ([]catalog.WorkoutDay, error) {
	var days []catalog.WorkoutDay
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts", nil, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *HTTPClient) Exercises(ctx context.Context, workout string) ([]catalog.Exercise, error) {
	params := url.Values{"workout": {workout}}
	var exercises []catalog.Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", params, nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *HTTPClient) Sheet(ctx context.Context, workout string, week int) (tracker.Sheet, error) {
	params := url.Values{}
	if workout != "" {
		params.Set("workout", workout)
	}
	if week != 0 {
		params.Set("week", strconv.Itoa(week))
	}
	var sheet tracker.Sheet
	if err := c.do(ctx, http.MethodGet, "/api/v1/sheet", params, nil, &sheet); err != nil {
		return tracker.Sheet{}, err
	}
	return sheet, nil
}

func (c *HTTPClient) Series(ctx context.Context, workout, exercise string) ([]progress.Point, error) {
	params := url.Values{"workout": {workout}, "exercise": {exercise}}
	var points []progress.Point
	if err := c.do(ctx, http.MethodGet, "/api/v1/series", params, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *HTTPClient) Record(ctx context.Context, key performance.Key, field performance.Field, value string) (performance.SetEntry, error) {
	body := struct {
		performance.Key
		Field performance.Field `json:"field"`
		Value string            `json:"value"`
	}{key, field, value}

	var resp struct {
		Entry performance.SetEntry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/entries", nil, body, &resp); err != nil {
		return performance.SetEntry{}, err
	}
	return resp.Entry, nil
}
