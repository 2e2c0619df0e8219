// Package api implements the HTTP client for the note service. It keeps the
// access token from the last login and attaches it as a bearer header on
// protected calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// NoteSummary is the public note projection returned by the server.
type NoteSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Profile is the requester identity as asserted by the server.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client talks to the note service over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// LoggedIn reports whether a login has succeeded in this session.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

func (c *Client) Register(ctx context.Context, username string, password []byte, email, name, phone string) error {
	body := map[string]string{
		"username":    username,
		"password":    string(password),
		"email":       email,
		"name":        name,
		"phoneNumber": phone,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", body, false, nil)
}

func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	body := map[string]string{"username": username, "password": string(password)}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

// Refresh rotates the refresh token and replaces the session's access token.
func (c *Client) Refresh(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.refreshToken}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, false, &resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/api/auth/delete", nil, true, nil); err != nil {
		return err
	}
	c.accessToken = ""
	c.refreshToken = ""
	return nil
}

func (c *Client) ListNotes(ctx context.Context) ([]NoteSummary, error) {
	var result []NoteSummary
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, true, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SearchNotes(ctx context.Context, text string) ([]NoteSummary, error) {
	var result []NoteSummary
	path := "/api/notes/searchNotes?text=" + url.QueryEscape(text)
	if err := c.do(ctx, http.MethodGet, path, nil, true, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetNote returns ErrNotFound for a missing note; the server reports this as
// a 200 with a message body, not a 404.
func (c *Client) GetNote(ctx context.Context, id string) (*NoteSummary, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, true, &raw); err != nil {
		return nil, err
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err == nil && msg.Message != "" {
		return nil, ErrNotFound
	}

	var note NoteSummary
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*NoteSummary, error) {
	body := map[string]string{"title": title, "content": content}
	var note NoteSummary
	if err := c.do(ctx, http.MethodPost, "/api/notes", body, true, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, title, content *string) (*NoteSummary, error) {
	body := map[string]*string{"title": title, "content": content}
	var note NoteSummary
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), body, true, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote reports false when the note was already gone.
func (c *Client) DeleteNote(ctx context.Context, id string) (bool, error) {
	var msg messageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, true, &msg); err != nil {
		return false, err
	}
	return msg.Message == "Note deleted successfully", nil
}

func (c *Client) ShareNote(ctx context.Context, id, targetUserID string) error {
	body := map[string]string{"userId": targetUserID}
	return c.do(ctx, http.MethodPost, "/api/notes/"+url.PathEscape(id)+"/share", body, true, nil)
}

// do sends one request and decodes the response into out (when non-nil).
// Non-2xx statuses are turned into errors, using the server's message when
// one is present.
func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if c.accessToken == "" {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg messageResponse
		if err := json.Unmarshal(data, &msg); err == nil && msg.Message != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%w: %s", ErrUnauthorized, msg.Message)
			case http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, msg.Message)
			}
			return errors.New(msg.Message)
		}
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
