// Package client is a typed HTTP client for the GospelReach API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gospelreach/internal/domain"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gospelreach: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

type Client struct {
	base    string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithSession(s *Session) Option { return func(c *Client) { c.session = s } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: NewSession(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

type AuthResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/signup", map[string]string{"name": name, "email": email, "password": password})
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, &domain.User{ID: out.ID, Name: out.Name, Email: out.Email})
	return &out, nil
}

// Logout only forgets the local credentials. Tokens stay valid until they expire.
func (c *Client) Logout() { c.session.Clear() }

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	c.session.Set(c.session.Token(), out.User)
	return out.User, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/auth/me", nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

func (c *Client) ListPosts(ctx context.Context) ([]domain.FeedPost, error) {
	var out []domain.FeedPost
	err := c.do(ctx, http.MethodGet, "/posts", nil, &out)
	return out, err
}

func (c *Client) GetPost(ctx context.Context, id int64) (*domain.FeedPost, error) {
	var out domain.FeedPost
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*domain.Post, error) {
	var out domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, in PostInput) (*domain.FeedPost, error) {
	var out domain.FeedPost
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

func (c *Client) Comments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/%d", postID), nil, &out)
	return out, err
}

func (c *Client) AddComment(ctx context.Context, postID int64, content string) (*domain.Comment, error) {
	var out domain.Comment
	body := map[string]any{"postId": postID, "content": content}
	if err := c.do(ctx, http.MethodPost, "/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}

func (c *Client) ToggleLike(ctx context.Context, postID int64) (domain.LikeToggle, error) {
	var out domain.LikeToggle
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/likes/%d", postID), nil, &out)
	return out, err
}

func (c *Client) LikeCount(ctx context.Context, postID int64) (int64, error) {
	var out struct {
		TotalLikes int64 `json:"totalLikes"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/likes/%d/count", postID), nil, &out)
	return out.TotalLikes, err
}

func (c *Client) LikeStatus(ctx context.Context, postID int64) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/likes/%d/status", postID), nil, &out)
	return out.Liked, err
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

func (c *Client) PostsByCategory(ctx context.Context, name string) ([]domain.FeedPost, error) {
	var out []domain.FeedPost
	err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(name), nil, &out)
	return out, err
}

// do sends one request with the session token. A 401 on an authenticated
// request clears the session.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok := c.session.Token()
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(res.StatusCode)
		}
		if res.StatusCode == http.StatusUnauthorized && tok != "" {
			c.session.Clear()
		}
		return &APIError{Status: res.StatusCode, Message: msg.Message}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
