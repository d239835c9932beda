// Package client is a typed API client for the Lift A Kids backend. It keeps
// the session snapshot read at login, attaches the bearer token per request,
// and converts failures into single human-readable messages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ErrSessionExpired is returned once a 401 clears the stored session; the
// caller must log in again.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError is a non-2xx backend response reduced to what a user can act on.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Session is the account snapshot captured at login. It is read once, not
// refetched per view.
type Session struct {
	Token       string          `json:"token"`
	AccountType string          `json:"account_type"`
	Account     json.RawMessage `json:"account"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session
}

// New builds a client against a single base URL; every module goes through
// the same endpoint configuration.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Session returns the current session snapshot, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Login authenticates and stores the session snapshot.
func (c *Client) Login(ctx context.Context, email, password, accountType string) (*Session, error) {
	body := map[string]string{
		"email":        email,
		"password":     password,
		"account_type": accountType,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/login", body, &session); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = &session
	c.mu.Unlock()
	return &session, nil
}

// Logout drops the stored session.
func (c *Client) Logout() {
	c.clearSession()
}

// do runs one JSON request/response cycle. A 401 clears the session; network
// failures come back as a generic connectivity message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("no response from server, check your connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		return ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: humanMessage(resp.StatusCode)}
		var payload struct {
			Error                 string `json:"error"`
			ExistingSponsorshipID int    `json:"existing_sponsorship_id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			if resp.StatusCode == http.StatusConflict && payload.ExistingSponsorshipID != 0 {
				return &DuplicateError{APIError: apiErr, ExistingSponsorshipID: payload.ExistingSponsorshipID}
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func humanMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request was rejected, please review the form"
	case http.StatusNotFound:
		return "Record not found"
	case http.StatusConflict:
		return "A record already exists for this period"
	default:
		return "Something went wrong, please try again"
	}
}

// DuplicateError is the already-exists rejection carrying the reusable
// sponsorship identity.
type DuplicateError struct {
	*APIError
	ExistingSponsorshipID int
}

// Division mirrors the backend area shapes with only what selectors need.
type Division struct {
	DivisionID int    `json:"division_id"`
	Name       string `json:"name"`
}

type District struct {
	DistrictID int    `json:"district_id"`
	DivisionID int    `json:"division_id"`
	Name       string `json:"name"`
}

type Thana struct {
	ThanaID    int    `json:"thana_id"`
	DistrictID int    `json:"district_id"`
	Name       string `json:"name"`
}

type Union struct {
	UnionID int    `json:"union_id"`
	ThanaID int    `json:"thana_id"`
	Name    string `json:"name"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// Divisions fetches the top level of the area tree.
func (c *Client) Divisions(ctx context.Context) ([]Division, error) {
	var env dataEnvelope[[]Division]
	if err := c.do(ctx, http.MethodGet, "/api/v1/divisions", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Districts fetches the districts of one division.
func (c *Client) Districts(ctx context.Context, divisionID int) ([]District, error) {
	var env dataEnvelope[[]District]
	path := "/api/v1/districts?division_id=" + strconv.Itoa(divisionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Thanas fetches the thanas of one district.
func (c *Client) Thanas(ctx context.Context, districtID int) ([]Thana, error) {
	var env dataEnvelope[[]Thana]
	path := "/api/v1/thanas?district_id=" + strconv.Itoa(districtID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Unions fetches the unions of one thana.
func (c *Client) Unions(ctx context.Context, thanaID int) ([]Union, error) {
	var env dataEnvelope[[]Union]
	path := "/api/v1/unions?thana_id=" + strconv.Itoa(thanaID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
