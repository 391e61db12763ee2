package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/client/models"
	"github.com/dmitrijs2005/smartdrive/internal/common"
)

// HTTPClient talks to the SmartDrive JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for baseURL with the given request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// HTTP exposes the underlying *http.Client, e.g. for following share links.
func (c *HTTPClient) HTTP() *http.Client { return c.http }

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) getToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusError maps a non-2xx response onto an *APIError.
func statusError(resp *http.Response, authCall bool) error {
	var body errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	e := &APIError{StatusCode: resp.StatusCode, Message: body.Message, Detail: body.Error}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		e.Err = common.ErrInvalidInput
	case http.StatusConflict:
		e.Err = common.ErrAlreadyExists
	case http.StatusUnauthorized:
		if authCall {
			e.Err = common.ErrInvalidCredentials
		} else {
			e.Err = ErrUnauthorized
		}
	case http.StatusInternalServerError:
		if body.Error != "" {
			e.Err = common.ErrStorageFailure
		} else {
			e.Err = common.ErrorInternal
		}
	}
	return e
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		token := c.getToken()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, path == "/login")
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", false, out)
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, "", false, nil)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/register", credentials{username, password}, nil)
}

// Login returns the access token and installs it on the client.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.postJSON(ctx, "/login", credentials{username, password}, &out); err != nil {
		return "", err
	}
	c.SetToken(out.AccessToken)
	return out.AccessToken, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return common.DefaultContentType
}

// Upload streams r as the multipart "file" field and returns the file URL.
func (c *HTTPClient) Upload(ctx context.Context, fileName string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "file", "filename": fileName}))
		h.Set("Content-Type", contentTypeFor(fileName))

		part, err := mw.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	var out struct {
		Message string `json:"message"`
		FileURL string `json:"file_url"`
	}
	err := c.do(ctx, http.MethodPost, "/upload", pr, mw.FormDataContentType(), true, &out)
	_ = pr.Close()
	if err != nil {
		return "", err
	}
	return out.FileURL, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]*models.File, error) {
	var out struct {
		Files []*models.File `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/files", nil, "", true, &out); err != nil {
		return nil, err
	}
	if out.Files == nil {
		out.Files = []*models.File{}
	}
	return out.Files, nil
}

func (c *HTTPClient) Delete(ctx context.Context, fileName string) error {
	return c.do(ctx, http.MethodDelete, "/delete/"+escapePath(fileName), nil, "", true, nil)
}

func (c *HTTPClient) Share(ctx context.Context, fileName string) (*models.ShareLink, error) {
	var out models.ShareLink
	if err := c.do(ctx, http.MethodGet, "/share/"+escapePath(fileName), nil, "", true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
