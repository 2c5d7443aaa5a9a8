// Package api is the HTTP client for the notes server. It speaks the JSON
// API, keeps the bearer token obtained at login and maps the server's error
// responses onto the shared sentinel errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dsmirnovs/notekeeper/internal/common"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NotePatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

type NotePage struct {
	Items        []Note `json:"items"`
	Total        int64  `json:"total"`
	TotalPages   int    `json:"total_pages"`
	Page         int    `json:"page"`
	PreviousPage *int   `json:"previous_page"`
	NextPage     *int   `json:"next_page"`
}

// ListOptions mirrors the query parameters of the list endpoint. Zero-valued
// filters are omitted from the request.
type ListOptions struct {
	Search   string
	Category string
	SortBy   string
	Asc      bool
	Page     int
	PerPage  int
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the bearer token saved by the last successful Login.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}

	return nil
}

// apiError turns a non-2xx response into a sentinel-wrapped error carrying
// the server's message.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrConflict, message)
	default:
		return fmt.Errorf("server error: %s", message)
	}
}

func (c *Client) Register(ctx context.Context, username string, email string, password string) (*User, error) {
	req := map[string]string{"username": username, "email": email, "password": password}

	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates and saves the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email string, password string) (*User, error) {
	req := map[string]string{"email": email, "password": password}

	var resp struct {
		AccessToken string `json:"access_token"`
		User        *User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.AccessToken
	return resp.User, nil
}

// Logout discards the saved token.
func (c *Client) Logout() {
	c.token = ""
}

func (c *Client) CreateNote(ctx context.Context, title string, content string, category *string) (*Note, error) {
	req := map[string]any{"title": title, "content": content}
	if category != nil {
		req["category"] = *category
	}

	note := &Note{}
	if err := c.do(ctx, http.MethodPost, "/notes", req, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	note := &Note{}
	if err := c.do(ctx, http.MethodGet, "/notes/"+id, nil, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch NotePatch) (*Note, error) {
	note := &Note{}
	if err := c.do(ctx, http.MethodPut, "/notes/"+id, patch, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil)
}

func (c *Client) ListNotes(ctx context.Context, opts ListOptions) (*NotePage, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("q", opts.Search)
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.SortBy != "" {
		query.Set("sort", opts.SortBy)
	}
	if opts.Asc {
		query.Set("desc", "false")
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	path := "/notes"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	page := &NotePage{}
	if err := c.do(ctx, http.MethodGet, path, nil, page); err != nil {
		return nil, err
	}

	return page, nil
}
