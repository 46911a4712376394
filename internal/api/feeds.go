package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campuslink/campuslink-go/internal/types"
)

// Content feeds are plain list endpoints with the same shape; listFeed keeps
// the per-feed wrappers trivial.
func listFeed[T any](ctx context.Context, httpClient *http.Client, baseURL, path, operation string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s%s", baseURL, path)
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
		return nil, fmt.Errorf("%s: status %d", operation, resp.StatusCode)
	}
	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListEvents fetches the campus events feed.
func ListEvents(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Event, error) {
	return listFeed[types.Event](ctx, httpClient, baseURL, "/api/events", "list events")
}

// ListBlogs fetches the blog feed.
func ListBlogs(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Blog, error) {
	return listFeed[types.Blog](ctx, httpClient, baseURL, "/api/blogs", "list blogs")
}

// ListStartups fetches the startups feed.
func ListStartups(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Startup, error) {
	return listFeed[types.Startup](ctx, httpClient, baseURL, "/api/startups", "list startups")
}

// ListDiscounts fetches the student-discounts feed.
func ListDiscounts(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Discount, error) {
	return listFeed[types.Discount](ctx, httpClient, baseURL, "/api/discounts", "list discounts")
}

// ListCertifications fetches the courses/certifications feed.
func ListCertifications(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Certification, error) {
	return listFeed[types.Certification](ctx, httpClient, baseURL, "/api/certifications", "list certifications")
}
