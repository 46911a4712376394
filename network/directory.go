package network

import (
	"context"
	"sync"

	"github.com/campuslink/campuslink-go/internal/types"
)

// DirectoryUnavailableMsg is the user-visible message when the directory
// cannot be loaded. There is no automatic retry; remounting or an explicit
// Reload is the only recovery.
const DirectoryUnavailableMsg = "Unable to load users at this time. Please try again later."

// Directory holds the normalized platform user list.
type Directory struct {
	mu     sync.Mutex
	users  []types.UserRecord
	errMsg string
	loaded bool
}

// Load fetches and normalizes the full user list. On failure the list is
// published empty together with the user-visible error message. A nil-safe
// live gate is consulted at publish time so a fetch resolving after the
// owning view tore down is discarded.
func (d *Directory) Load(ctx context.Context, backend Backend, live func() bool) {
	raw, err := backend.ListUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if live != nil && !live() {
		return
	}
	d.loaded = true
	if err != nil {
		d.users = []types.UserRecord{}
		d.errMsg = DirectoryUnavailableMsg
		return
	}
	d.users = types.NormalizeUsers(raw)
	d.errMsg = ""
}

// Users returns the current list and the error message, if any. The slice
// is shared read-only; callers must not mutate it.
func (d *Directory) Users() ([]types.UserRecord, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.users == nil {
		return []types.UserRecord{}, d.errMsg
	}
	return d.users, d.errMsg
}

// Loaded reports whether the initial fetch has resolved (either way).
func (d *Directory) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}
