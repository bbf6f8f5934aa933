// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remote talks to the conversion service's /upload and /feedback
// endpoints.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/datafix/internal/httputil"
	"github.com/pdiddy/datafix/internal/workflow"
	"github.com/pdiddy/datafix/pkg/types"
)

const (
	uploadPath   = "/upload"
	feedbackPath = "/feedback"

	// FileField is the multipart field that carries the package.
	FileField = "file"
)

var errNullBody = errors.New("response body is JSON null")

// Client sends requests to one service instance.
type Client struct {
	http      *http.Client
	base      *url.URL
	userAgent string
	token     string
	retries   int
}

// New returns a Client for cfg.ServerURL. When hc is nil a client with
// cfg.Timeout is created; a zero timeout leaves requests unbounded.
func New(cfg types.ClientConfig, hc *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.ServerURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL %q: %w", cfg.ServerURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q must be http or https", cfg.ServerURL)
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:      hc,
		base:      base,
		userAgent: cfg.UserAgent,
		token:     cfg.Token,
		retries:   cfg.MaxRetries,
	}, nil
}

// uploadResponse is the JSON body /upload answers with. Success and error
// bodies share one shape; only the populated fields differ.
type uploadResponse struct {
	Success  bool   `json:"success"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
	CaseID   string `json:"case_id"`
	Error    string `json:"error"`
}

// Upload posts f as multipart field "file" and classifies the response.
// The HTTP status is not consulted: the service reports rejections as a
// JSON error field, usually with a 4xx status.
func (c *Client) Upload(ctx context.Context, f workflow.File) workflow.Outcome {
	body, contentType, err := multipartBody(f)
	if err != nil {
		return workflow.TransportFailed(err)
	}

	req, err := c.newRequest(ctx, uploadPath, contentType, body)
	if err != nil {
		return workflow.TransportFailed(err)
	}
	req.Header.Set("Accept", "application/json")

	var ur *uploadResponse
	if err := c.doJSON(ctx, req, &ur); err != nil {
		return workflow.TransportFailed(err)
	}
	if ur == nil {
		return workflow.TransportFailed(errNullBody)
	}

	if ur.Error != "" {
		return workflow.Rejected(ur.Error)
	}
	return workflow.Succeeded(ur.Content, ur.Filename, ur.CaseID)
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

type feedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendFeedback posts {"feedback": text} and returns the service's success
// flag. A response that is not JSON is an error.
func (c *Client) SendFeedback(ctx context.Context, text string) (bool, error) {
	payload, err := json.Marshal(feedbackRequest{Feedback: text})
	if err != nil {
		return false, fmt.Errorf("encoding feedback: %w", err)
	}

	req, err := c.newRequest(ctx, feedbackPath, "application/json", payload)
	if err != nil {
		return false, err
	}

	var fr *feedbackResponse
	if err := c.doJSON(ctx, req, &fr); err != nil {
		return false, err
	}
	if fr == nil {
		return false, errNullBody
	}
	if !fr.Success && fr.Error != "" {
		return false, fmt.Errorf("feedback rejected: %s", fr.Error)
	}
	return fr.Success, nil
}

func (c *Client) newRequest(ctx context.Context, path, contentType string, body []byte) (*http.Request, error) {
	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, v any) error {
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.retries)
	if err != nil {
		return fmt.Errorf("POST %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing response (HTTP %d): %w", resp.StatusCode, err)
	}
	return nil
}

func multipartBody(f workflow.File) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(FileField, f.Name)
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if f.Body != nil {
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
