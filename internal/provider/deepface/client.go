package deepface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the DeepFace client
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	Model            string
	Detector         string
	DistanceMetric   string
	EnforceDetection bool
	RetryCount       int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:          "http://localhost:5005",
		Timeout:          60 * time.Second,
		Model:            "SFace",
		Detector:         "opencv",
		DistanceMetric:   "cosine",
		EnforceDetection: true,
		RetryCount:       0,
	}
}

// Client is the HTTP client for DeepFace API
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new DeepFace client
func NewClient(config Config) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Verify calls POST /verify with two data URI encoded images
func (c *Client) Verify(ctx context.Context, img1, img2 string) (*VerifyResponse, error) {
	req := VerifyRequest{
		Img1:             img1,
		Img2:             img2,
		ModelName:        c.config.Model,
		DetectorBackend:  c.config.Detector,
		DistanceMetric:   c.config.DistanceMetric,
		EnforceDetection: c.config.EnforceDetection,
		Align:            true,
	}

	var resp VerifyResponse
	if err := c.doRequestWithRetry(ctx, http.MethodPost, "/verify", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Represent calls POST /represent. Detection is taken from the caller so the
// warm-up can run on an image without a face.
func (c *Client) Represent(ctx context.Context, img string, enforceDetection bool) (*RepresentResponse, error) {
	req := RepresentRequest{
		Img:              img,
		ModelName:        c.config.Model,
		DetectorBackend:  c.config.Detector,
		EnforceDetection: enforceDetection,
	}

	var resp RepresentResponse
	if err := c.doRequestWithRetry(ctx, http.MethodPost, "/represent", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// maxBackoff is the maximum backoff duration for retries
const maxBackoff = 30 * time.Second

// calculateBackoff calculates exponential backoff duration for a given attempt
// Returns 1s, 2s, 4s, 8s, etc. up to maxBackoff
func calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	seconds := 1
	for i := 1; i < attempt && i < 6; i++ {
		seconds *= 2
	}
	return time.Duration(seconds) * time.Second
}

// StatusError is returned when DeepFace answers with a 4xx or 5xx status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("deepface returned status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) noFace() bool {
	return strings.Contains(strings.ToLower(e.Message), "could not be detected")
}

// doRequestWithRetry executes HTTP request with retry logic
func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			backoff := calculateBackoff(attempt)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.doRequest(ctx, method, path, body, result)
		if lastErr == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		// No face and 4xx answers are final, retrying gives the same result
		if isFinal(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrDeepFaceUnavailable, lastErr)
}

func isFinal(err error) bool {
	if errors.Is(err, ErrNoFaceInImage) || errors.Is(err, ErrInvalidResponse) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
	}
	return false
}

// doRequest executes a single HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
		if statusErr.noFace() {
			return fmt.Errorf("%w: %s", ErrNoFaceInImage, statusErr.Message)
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	return nil
}

// errorMessage prefers the "error" field DeepFace puts in failure bodies
func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
