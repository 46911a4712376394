package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campuslink/campuslink-go/internal/types"
)

// ListUsers fetches the full platform directory. The payload is loose; the
// caller normalizes it through types.NormalizeUsers. No pagination is used.
func ListUsers(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.RawUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/users", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list users: status %d", resp.StatusCode)
	}
	var lr types.ListUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Users, nil
}

// GetProfile retrieves the profile for a user.
func GetProfile(ctx context.Context, httpClient *http.Client, baseURL, userUID string) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/profiles/%s", baseURL, userUID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get profile: status %d", resp.StatusCode)
	}
	var p types.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces the editable fields of the caller's profile.
func UpdateProfile(ctx context.Context, httpClient *http.Client, baseURL, userUID string, req types.UpdateProfileRequest) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/profiles/%s", baseURL, userUID)
	httpReq, err := newJSONRequest(ctx, http.MethodPut, url, req)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update profile: status %d", resp.StatusCode)
	}
	var p types.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
