// Package api is a thin HTTP client for the collaboration backend's REST
// surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
)

// Client talks to one backend instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Session is the identity returned by a successful login.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// User is one roster entry.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Note is one shared project note.
type Note struct {
	ID      string   `json:"id"`
	Author  User     `json:"author"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Phase   string   `json:"phase"`
	Tags    []string `json:"tags"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, name, password string) (*Session, error) {
	body := map[string]string{"name": name, "password": password}

	var session Session
	if err := c.post(ctx, "/api/login", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Users lists the roster.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Notes lists all shared notes.
func (c *Client) Notes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.get(ctx, "/api/notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote posts a new note on behalf of authorID.
func (c *Client) CreateNote(ctx context.Context, authorID, title, content, phase string, tags []string) (*Note, error) {
	body := map[string]any{
		"authorId": authorID,
		"title":    title,
		"content":  content,
		"phase":    phase,
		"tags":     tags,
	}

	var note Note
	if err := c.post(ctx, "/api/notes", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode >= 400:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrorValidation, e.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
