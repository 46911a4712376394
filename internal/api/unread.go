package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campuslink/campuslink-go/internal/types"
)

// GetUnreadCounts fetches the unread-message snapshot for userUID. The map
// is keyed by peer uid; peers with nothing unread are absent.
func GetUnreadCounts(ctx context.Context, httpClient *http.Client, baseURL, userUID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/messages/%s/unread", baseURL, userUID)
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
		return nil, fmt.Errorf("get unread counts: status %d", resp.StatusCode)
	}
	var ur types.UnreadCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, err
	}
	if ur.Counts == nil {
		return map[string]int{}, nil
	}
	return ur.Counts, nil
}
