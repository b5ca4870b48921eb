package dietapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
	"github.com/yanqian/dietdash/internal/domain/nutrition"
	"github.com/yanqian/dietdash/pkg/metrics"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultUserPath     = "/user/{username}"
	defaultDietPath     = "/diet/{userId}/{date}"
	defaultExercisePath = "/userexercise/{userId}"
	defaultLogMealPath  = "/diet/updatediet"
)

// Paths holds endpoint templates relative to the base URL. Placeholders
// {username}, {userId} and {date} are substituted with escaped values.
type Paths struct {
	User     string
	Diet     string
	Exercise string
	LogMeal  string
}

// Client reads users, meals and exercises from the diet API.
type Client struct {
	baseURL    string
	paths      Paths
	httpClient *http.Client
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("diet api error: status=%d body=%s", e.StatusCode, e.Body)
}

// NewClient builds an API client. Empty paths fall back to the default routes.
func NewClient(baseURL string, timeout time.Duration, paths Paths) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if strings.TrimSpace(paths.User) == "" {
		paths.User = defaultUserPath
	}
	if strings.TrimSpace(paths.Diet) == "" {
		paths.Diet = defaultDietPath
	}
	if strings.TrimSpace(paths.Exercise) == "" {
		paths.Exercise = defaultExercisePath
	}
	if strings.TrimSpace(paths.LogMeal) == "" {
		paths.LogMeal = defaultLogMealPath
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		paths:   paths,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LookupUser resolves a username into the user record carrying its uid.
func (c *Client) LookupUser(ctx context.Context, username string) (dashboard.User, error) {
	endpoint := c.expand(c.paths.User, map[string]string{"username": username})

	var raw userRecord
	err := c.getJSON(ctx, "user", endpoint, &raw)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return dashboard.User{}, fmt.Errorf("lookup %q: %w", username, dashboard.ErrUserNotFound)
	}
	if err != nil {
		return dashboard.User{}, err
	}
	uid := int64(raw.UID)
	if uid <= 0 {
		return dashboard.User{}, fmt.Errorf("lookup %q: missing uid: %w", username, dashboard.ErrUserNotFound)
	}
	return dashboard.User{UID: uid, Username: raw.Username, Fullname: raw.Fullname}, nil
}

// FetchMeals returns the meals logged by a user on a date.
func (c *Client) FetchMeals(ctx context.Context, userID int64, date string) ([]nutrition.MealRecord, error) {
	endpoint := c.expand(c.paths.Diet, map[string]string{
		"userId": strconv.FormatInt(userID, 10),
		"date":   date,
	})
	var records []nutrition.MealRecord
	if err := c.getJSON(ctx, "diet", endpoint, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []nutrition.MealRecord{}
	}
	return records, nil
}

// FetchExercises returns the exercise sessions logged by a user.
func (c *Client) FetchExercises(ctx context.Context, userID int64) ([]nutrition.ExerciseRecord, error) {
	endpoint := c.expand(c.paths.Exercise, map[string]string{
		"userId": strconv.FormatInt(userID, 10),
	})
	var records []nutrition.ExerciseRecord
	if err := c.getJSON(ctx, "exercise", endpoint, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []nutrition.ExerciseRecord{}
	}
	return records, nil
}

// LogMeal posts a scaled meal record. The response body is ignored.
func (c *Client) LogMeal(ctx context.Context, entry dashboard.MealEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode meal: %w", err)
	}
	endpoint := c.expand(c.paths.LogMeal, map[string]string{
		"userId": strconv.FormatInt(entry.UID, 10),
		"date":   entry.Date,
	})
	return c.do(ctx, "log_meal", http.MethodPost, endpoint, payload, nil)
}

func (c *Client) getJSON(ctx context.Context, name, endpoint string, out any) error {
	return c.do(ctx, name, http.MethodGet, endpoint, nil, out)
}

func (c *Client) do(ctx context.Context, name, method, endpoint string, payload []byte, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(name, time.Since(start), err)
	}()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", name, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

func (c *Client) expand(template string, values map[string]string) string {
	path := template
	for key, value := range values {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

type userRecord struct {
	UID      flexibleID `json:"uid"`
	Username string     `json:"username"`
	Fullname string     `json:"fullname"`
}

// flexibleID accepts numeric and string encoded identifiers.
type flexibleID int64

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	*id = 0
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	*id = flexibleID(parsed)
	return nil
}

var _ dashboard.DietClient = (*Client)(nil)
