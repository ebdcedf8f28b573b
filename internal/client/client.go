// ABOUTME: HTTP client for the weblog/portfolio remote API
// ABOUTME: Attaches the session bearer token to admin calls and types every endpoint

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/psyberpath/portfolio-v1/internal/session"
)

// PostSummary is a list-view post as returned by GET /posts.
type PostSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Author identifies the writer of a post.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is a full post as returned by GET /posts/{slugOrId}.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

// PostUpdate carries partial-update fields for PATCH /posts/{id}.
// Nil fields are omitted from the request body and left unchanged server-side.
type PostUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// HealthStatus is the GET /health response.
type HealthStatus struct {
	Status string `json:"status"`
}

// errorBody is the server's error response shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Options tunes client construction.
type Options struct {
	Timeout time.Duration
	// AllProxy routes requests through an SSH+SOCKS5 jump host when set.
	AllProxy string
	// ClearTokenOn401 removes the stored token when an authorized call is
	// rejected. Off by default: the stored token persists and the user may
	// retry or re-login explicitly.
	ClearTokenOn401 bool
}

// Client is the typed API client. Public reads go out bare; admin writes read
// the session token synchronously before dispatch and fail fast when Locked.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	session         *session.Session
	clearTokenOn401 bool
}

// New creates an API client bound to the given session.
func New(baseURL string, sess *session.Session, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{}
	if opts.AllProxy != "" {
		if dialContextFunc := createSOCKS5DialContextFunc(opts.AllProxy); dialContextFunc != nil {
			transport.DialContext = dialContextFunc
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		session:         sess,
		clearTokenOn401: opts.ClearTokenOn401,
	}
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Login exchanges credentials for a bearer token via POST /auth/login.
// It returns the token without storing it; the caller decides whether the
// session transitions.
func (c *Client) Login(ctx context.Context, identity, secret string) (string, error) {
	payload := map[string]string{"identity": identity, "secret": secret}
	var out struct {
		AccessToken string `json:"accessToken"`
	}

	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, false, &out); err != nil {
		// Any HTTP failure without a server-supplied message reads as a
		// credential problem, whatever the status code was.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status > 0 && !apiErr.serverMsg {
			apiErr.Msg = "Invalid credentials"
		}
		return "", err
	}

	if out.AccessToken == "" {
		return "", &APIError{Type: ErrorTypeServer, Msg: "token missing in response"}
	}
	return out.AccessToken, nil
}

// ListPosts fetches post summaries via GET /posts. Public, no token attached.
func (c *Client) ListPosts(ctx context.Context) ([]PostSummary, error) {
	var posts []PostSummary
	if err := c.do(ctx, http.MethodGet, "/posts", nil, false, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single post by slug or id via GET /posts/{slugOrId}.
// Public, no token attached.
func (c *Client) GetPost(ctx context.Context, slugOrID string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+slugOrID, nil, false, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post via POST /posts. Requires a session token.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	payload := map[string]string{"title": title, "content": content}
	var post Post
	if err := c.do(ctx, http.MethodPost, "/posts", payload, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update via PATCH /posts/{id}. Only the fields
// set on update are sent; the rest stay as they are. Requires a session token.
func (c *Client) UpdatePost(ctx context.Context, id string, update PostUpdate) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPatch, "/posts/"+id, update, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post via DELETE /posts/{id}. Requires a session token.
// Whether deleting an already-deleted id succeeds is up to the server.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, true, nil)
}

// Subscribe signs an address up for the newsletter via POST /newsletter/subscribe.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/newsletter/subscribe", payload, false, nil)
}

// Health reports service status via GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, false, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do issues one request. When authorized is set, the current token is read
// from the session before dispatch; a Locked session fails fast without a
// network call.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, authorized bool, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authorized {
		token, ok := c.session.Token()
		if !ok {
			return &APIError{Type: ErrorTypeUnauthorized, Msg: "no session token, run login first"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp, authorized)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Type: ErrorTypeServer, Status: resp.StatusCode, Msg: fmt.Sprintf("invalid response from server: %v", err)}
		}
	}
	return nil
}

// handleRequestError converts transport failures to the network bucket with
// context errors mapped to friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &APIError{Type: ErrorTypeNetwork, Msg: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &APIError{Type: ErrorTypeNetwork, Msg: "request timed out"}
	}
	return &APIError{Type: ErrorTypeNetwork, Msg: fmt.Sprintf("cannot reach server at %s: %v", c.baseURL, err)}
}

// handleErrorResponse parses API error responses into the taxonomy.
func (c *Client) handleErrorResponse(resp *http.Response, authorized bool) error {
	apiErr := &APIError{
		Type:   classifyStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Msg = body.Message
			apiErr.serverMsg = true
		} else if body.Error != "" {
			apiErr.Msg = body.Error
			apiErr.serverMsg = true
		}
	}
	if apiErr.Msg == "" {
		if apiErr.Type == ErrorTypeUnauthorized && authorized {
			apiErr.Msg = "authorization rejected by server"
		} else {
			apiErr.Msg = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
	}

	if authorized && apiErr.Type == ErrorTypeUnauthorized && c.clearTokenOn401 {
		if err := c.session.Clear(); err != nil {
			slog.Warn("Failed to clear rejected token", "error", err)
		} else {
			slog.Debug("Cleared rejected token", "status", resp.StatusCode)
		}
	}

	return apiErr
}
