package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned by GetFile when the target file does not yet
// exist on the branch.
var ErrNotFound = errors.New("github: file not found")

// ErrConflict is returned by PutFile when the supplied sha no longer
// matches the current file revision (concurrent modification).
var ErrConflict = errors.New("github: sha conflict")

// ContentsStore is the narrow capability the log appender needs from a
// remote versioned store: read a file with its revision token, write it
// back guarded by that token.
type ContentsStore interface {
	GetFile(ctx context.Context) (content []byte, sha string, err error)
	PutFile(ctx context.Context, content []byte, sha, message string) error
}

// Client talks to the GitHub contents API for a single file on a single
// branch. The sha returned by GetFile is the optimistic-concurrency
// token expected by PutFile.
type Client struct {
	baseURL string
	token   string
	owner   string
	repo    string
	path    string
	branch  string
	client  *http.Client
}

// NewClient builds a contents client for owner/repo:path on branch.
func NewClient(token, owner, repo, path, branch string) *Client {
	return &Client{
		baseURL: "https://api.github.com",
		token:   token,
		owner:   owner,
		repo:    repo,
		path:    path,
		branch:  branch,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API host, used by tests against httptest.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *Client) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, url.PathEscape(c.path))
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// GetFile fetches the current file content and its sha. ErrNotFound
// means the file does not exist yet and the caller should start fresh.
func (c *Client) GetFile(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL()+"?ref="+url.QueryEscape(c.branch), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("github get contents: status=%d body=%s", resp.StatusCode, truncate(body, 200))
	}

	var parsed struct {
		SHA     string `json:"sha"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, "", fmt.Errorf("unmarshal contents: %w", err)
	}

	// The API wraps base64 at 60 columns; strip the newlines first.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(parsed.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("decode content: %w", err)
	}
	return raw, parsed.SHA, nil
}

// PutFile writes content to the file. When sha is non-empty it is sent
// as the expected revision; the API rejects the write with 409 if the
// file moved underneath us, surfaced here as ErrConflict. An empty sha
// creates the file.
func (c *Client) PutFile(ctx context.Context, content []byte, sha, message string) error {
	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(), bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict:
		return ErrConflict
	default:
		return fmt.Errorf("github put contents: status=%d body=%s", resp.StatusCode, truncate(body, 200))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
