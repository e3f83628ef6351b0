package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-admin/internal/domain"
	"course-admin/internal/httpx"
)

const (
	basePath        = "/api/admin/courses"
	contentTypeJSON = "application/json"
)

// Client is the gateway to the course admin backend. It holds no session
// state; every call is independent.
type Client struct {
	BaseURL string
	Token   string // optional bearer token, read from config at startup
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListCourses fetches the full catalog.
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	_, body, err := httpx.Do(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, c.BaseURL+basePath, nil)
	}, httpx.NoRetry())
	if err != nil {
		return nil, classify(KindFetch, err)
	}

	var rows []courseJSON
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &Error{Kind: KindFetch, Cause: CauseTransport, Err: fmt.Errorf("decode course list: %w", err)}
	}

	out := make([]domain.Course, 0, len(rows))
	for _, w := range rows {
		out = append(out, fromWire(w))
	}
	return out, nil
}

// CreateCourse posts a new course. The body carries no id; the backend
// assigns one.
func (c *Client) CreateCourse(ctx context.Context, f domain.Fields) error {
	return c.save(ctx, http.MethodPost, c.BaseURL+basePath, toWire("", f))
}

// UpdateCourse puts the edited fields at the course's id.
func (c *Client) UpdateCourse(ctx context.Context, id string, f domain.Fields) error {
	if strings.TrimSpace(id) == "" {
		return &Error{Kind: KindSave, Cause: CauseTransport, Err: errors.New("update requires a course id")}
	}
	return c.save(ctx, http.MethodPut, c.courseURL(id), toWire(id, f))
}

func (c *Client) save(ctx context.Context, method, u string, w courseJSON) error {
	b, err := json.Marshal(w)
	if err != nil {
		return &Error{Kind: KindSave, Cause: CauseTransport, Err: err}
	}

	_, _, err = httpx.Do(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, method, u, bytes.NewReader(b))
	}, httpx.NoRetry())
	if err != nil {
		return classify(KindSave, err)
	}
	return nil
}

// DeleteCourse removes a course by id.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &Error{Kind: KindDelete, Cause: CauseTransport, Err: errors.New("delete requires a course id")}
	}

	_, _, err := httpx.Do(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, http.MethodDelete, c.courseURL(id), nil)
	}, httpx.NoRetry())
	if err != nil {
		return classify(KindDelete, err)
	}
	return nil
}

func (c *Client) courseURL(id string) string {
	return c.BaseURL + basePath + "/" + url.PathEscape(id)
}

func (c *Client) newRequest(ctx context.Context, method, u string, body *bytes.Reader) (*http.Request, error) {
	var r *http.Request
	var err error
	if body != nil {
		r, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		r, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return nil, err
	}
	r.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		r.Header.Set("Content-Type", contentTypeJSON)
	}
	if c.Token != "" {
		r.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return r, nil
}

// classify turns a transport-level failure into the gateway error taxonomy:
// a non-2xx response is a rejection, anything else is a transport failure.
func classify(kind Kind, err error) *Error {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		return &Error{Kind: kind, Cause: CauseRejected, Status: herr.StatusCode, Err: err}
	}
	return &Error{Kind: kind, Cause: CauseTransport, Err: err}
}
