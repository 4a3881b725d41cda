package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rosterhq/roster/internal/schema"
)

const usersPath = "/api/users"

// Error bodies are read at most this far; enough for the shared error
// shape, small enough to ignore runaway HTML error pages.
const maxErrorBodySize = 64 << 10

// HTTPTransport is the HTTP/JSON implementation of Transport.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	token   TokenFunc
}

// NewHTTPTransport returns a transport rooted at baseURL. A nil client
// falls back to a default http.Client; token may be nil for servers that
// accept anonymous requests.
func NewHTTPTransport(baseURL string, client *http.Client, token TokenFunc) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		token:   token,
	}
}

func (t *HTTPTransport) List(ctx context.Context) ([]schema.User, error) {
	resp, err := t.do(ctx, http.MethodGet, usersPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrorFromResponse(resp)
	}

	var payload []schema.UserPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, malformed(resp.StatusCode, "decoding user list", err)
	}
	users, err := schema.ParseUserList(payload)
	if err != nil {
		return nil, malformed(resp.StatusCode, "user list failed validation", err)
	}
	return users, nil
}

func (t *HTTPTransport) GetByID(ctx context.Context, id string) (schema.User, error) {
	if id == "" {
		return schema.User{}, &Error{Kind: KindNotFound, Message: "empty identifier"}
	}

	resp, err := t.do(ctx, http.MethodGet, usersPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return schema.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schema.User{}, ErrorFromResponse(resp)
	}
	return decodeUser(resp)
}

func (t *HTTPTransport) Create(ctx context.Context, in schema.CreateUserInput) (schema.User, error) {
	// Fail fast: invalid input never leaves the process.
	if err := schema.ValidateCreate(in); err != nil {
		return schema.User{}, err
	}

	resp, err := t.do(ctx, http.MethodPost, usersPath, in)
	if err != nil {
		return schema.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return schema.User{}, ErrorFromResponse(resp)
	}
	return decodeUser(resp)
}

func (t *HTTPTransport) Update(ctx context.Context, id string, in schema.UpdateUserInput) (schema.User, error) {
	if id == "" {
		return schema.User{}, &Error{Kind: KindNotFound, Message: "empty identifier"}
	}
	if err := schema.ValidateUpdate(in); err != nil {
		return schema.User{}, err
	}

	resp, err := t.do(ctx, http.MethodPut, usersPath+"/"+url.PathEscape(id), in)
	if err != nil {
		return schema.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schema.User{}, ErrorFromResponse(resp)
	}
	return decodeUser(resp)
}

func (t *HTTPTransport) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Kind: KindNotFound, Message: "empty identifier"}
	}

	resp, err := t.do(ctx, http.MethodDelete, usersPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return ErrorFromResponse(resp)
	}
	return nil
}

// do builds and sends one request. body is JSON-marshalled when non-nil.
// A failure to obtain a response maps to KindNetwork; a token lookup
// failure is returned wrapped, preserving the collaborator's error chain.
func (t *HTTPTransport) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if t.token != nil {
		token, err := t.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquiring token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request failed", cause: err}
	}
	return resp, nil
}

// decodeUser parses a single-user success body through the schema layer, so
// the caller never sees unvalidated data.
func decodeUser(resp *http.Response) (schema.User, error) {
	var payload schema.UserPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return schema.User{}, malformed(resp.StatusCode, "decoding user", err)
	}
	u, err := schema.ParseUser(payload)
	if err != nil {
		return schema.User{}, malformed(resp.StatusCode, "user failed validation", err)
	}
	return u, nil
}

func malformed(status int, msg string, cause error) *Error {
	return &Error{Kind: KindMalformedResponse, Status: status, Message: msg, cause: cause}
}

// ErrorFromResponse maps a non-success response to an *Error: 404 to
// KindNotFound, remaining 4xx to KindServer with ClientFault, 5xx to
// KindServer. The body is decoded as the shared error shape when possible.
// Exported for sibling packages that issue their own requests against the
// same API, such as the session manager.
func ErrorFromResponse(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	e := &Error{Status: resp.StatusCode}

	var payload schema.ErrorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		e.Code = payload.Code
		e.Message = payload.Message
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = KindNotFound
	case resp.StatusCode >= 500:
		e.Kind = KindServer
	case resp.StatusCode >= 400:
		e.Kind = KindServer
		e.ClientFault = true
	default:
		e.Kind = KindServer
	}
	return e
}
