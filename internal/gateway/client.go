package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// APIError carries a backend rejection with its HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client is the thin HTTP gateway to the lesson quiz backend. It performs no
// local interpretation beyond decoding: the backend is the authoritative
// source of truth for grading, hearts and persistence.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope matches the backend's response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type restartRequest struct {
	Mode models.RestartMode `json:"mode"`
}

func (c *Client) FetchLessonQuizState(ctx context.Context, lessonID string) (*models.LessonQuizState, error) {
	var state models.LessonQuizState
	path := "/api/v1/lessons/" + url.PathEscape(lessonID) + "/quiz"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) SubmitLessonQuizAnswer(ctx context.Context, lessonID string, req models.SubmitRequest) (*models.SubmitResult, error) {
	var result models.SubmitResult
	path := "/api/v1/lessons/" + url.PathEscape(lessonID) + "/quiz/answers"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RestartLessonQuiz(ctx context.Context, lessonID string, mode models.RestartMode) (*models.LessonQuizState, error) {
	var state models.LessonQuizState
	path := "/api/v1/lessons/" + url.PathEscape(lessonID) + "/quiz/restart"
	if err := c.doJSON(ctx, http.MethodPost, path, restartRequest{Mode: mode}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) FetchLessonProgressDetail(ctx context.Context, lessonID string) (*models.LessonProgressDetail, error) {
	var detail models.LessonProgressDetail
	path := "/api/v1/lessons/" + url.PathEscape(lessonID) + "/progress"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseData any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errBody errorResponse
		_ = json.Unmarshal(raw, &errBody)
		return &APIError{StatusCode: response.StatusCode, Message: errBody.Message}
	}

	if responseData == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if err := json.Unmarshal(env.Data, responseData); err != nil {
		return fmt.Errorf("failed to decode response data from %s: %w", path, err)
	}
	return nil
}
