package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://users.roblox.com"

// RobloxResolver resolves handles against the Roblox users API.
type RobloxResolver struct {
	baseURL string
	client  *http.Client
}

// ResolverOption configures the RobloxResolver.
type ResolverOption func(*RobloxResolver)

// WithBaseURL overrides the directory endpoint, mainly for tests.
func WithBaseURL(u string) ResolverOption {
	return func(r *RobloxResolver) {
		r.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for lookups.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *RobloxResolver) {
		r.client = c
	}
}

// NewRobloxResolver creates a resolver against the Roblox users API.
func NewRobloxResolver(opts ...ResolverOption) *RobloxResolver {
	r := &RobloxResolver{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type usernameLookupRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernameLookupResponse struct {
	Data []struct {
		ID                int64  `json:"id"`
		Name              string `json:"name"`
		RequestedUsername string `json:"requestedUsername"`
	} `json:"data"`
}

// Resolve looks up a handle by exact (case-insensitive) match. A handle
// unknown to the directory yields ErrIdentityNotFound; transport and
// server failures are returned as wrapped errors.
func (r *RobloxResolver) Resolve(ctx context.Context, username string) (*Identity, error) {
	payload, err := json.Marshal(usernameLookupRequest{
		Usernames:          []string{username},
		ExcludeBannedUsers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/v1/usernames/users", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling directory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory service returned status %d", resp.StatusCode)
	}

	var body usernameLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding lookup response: %w", err)
	}

	for _, u := range body.Data {
		if strings.EqualFold(u.RequestedUsername, username) || strings.EqualFold(u.Name, username) {
			return &Identity{ID: u.ID, Username: u.Name}, nil
		}
	}

	return nil, ErrIdentityNotFound
}
