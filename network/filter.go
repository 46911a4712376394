package network

import (
	"strings"

	"github.com/campuslink/campuslink-go/internal/types"
)

// AllInterests is the single-select sentinel meaning "no interest filter".
const AllInterests = "All Interests"

// Filters is the user's current search and facet selection.
type Filters struct {
	// Search matches case-insensitively against first name only.
	Search string
	// Interest is single-select; empty or AllInterests disables it.
	Interest string
	// Skills is multi-select; a candidate matches with >=1 selected skill.
	Skills []string
	// Statuses is multi-select against the year-of-study field.
	Statuses []string
	// ConnectionsOnly switches the base set to the connections view.
	ConnectionsOnly bool
}

// active reports whether any narrowing filter is set. ConnectionsOnly is
// base-set selection, not a filter.
func (f Filters) active() bool {
	return f.Search != "" ||
		(f.Interest != "" && f.Interest != AllInterests) ||
		len(f.Skills) > 0 ||
		len(f.Statuses) > 0
}

// ApplyFilters reduces the directory to the visible list. The discovery
// view never shows self or already-connected peers; the connections view
// shows exactly the connected peers. With no active filter the base set is
// returned unchanged.
func ApplyFilters(directory []types.UserRecord, connected map[string]struct{}, selfUID string, f Filters) []types.UserRecord {
	base := baseSet(directory, connected, selfUID, f.ConnectionsOnly)
	if !f.active() {
		return base
	}

	search := strings.ToLower(f.Search)
	wantSkills := loweredSet(f.Skills)
	wantStatuses := loweredSet(f.Statuses)
	interest := f.Interest
	if interest == AllInterests {
		interest = ""
	}

	out := make([]types.UserRecord, 0, len(base))
	for _, u := range base {
		if search != "" && !strings.Contains(strings.ToLower(u.FirstName), search) {
			continue
		}
		if interest != "" && !containsFold(u.Interests, interest) {
			continue
		}
		if len(wantSkills) > 0 && skillOverlap(u.Skills, wantSkills) == 0 {
			continue
		}
		if len(wantStatuses) > 0 {
			if _, ok := wantStatuses[strings.ToLower(u.YearOfStudy)]; !ok {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

func baseSet(directory []types.UserRecord, connected map[string]struct{}, selfUID string, connectionsOnly bool) []types.UserRecord {
	out := make([]types.UserRecord, 0, len(directory))
	for _, u := range directory {
		_, isConn := connected[u.ID]
		if connectionsOnly {
			if isConn {
				out = append(out, u)
			}
			continue
		}
		if u.ID == selfUID || isConn {
			continue
		}
		out = append(out, u)
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
