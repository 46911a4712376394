package network

import (
	"strings"

	"github.com/campuslink/campuslink-go/internal/types"
)

// Partition is the derived recommendation split. Recommended holds the
// same-college block followed by the shared-skills block; both buckets keep
// original directory order. Every eligible, non-self, non-connected record
// appears in exactly one bucket.
type Partition struct {
	Recommended []types.UserRecord
	Remaining   []types.UserRecord
}

// Eligible mirrors the directory's display gate: only users who filled
// first name, skills and college are visible at all.
func Eligible(u types.UserRecord) bool {
	return u.FirstName != "" && len(u.Skills) > 0 && u.College != ""
}

// Recommend partitions the directory for the current user. Same-college
// wins over shared-skills when both apply; a candidate needs at least two
// overlapping skills (case-insensitive) to be recommended on skills alone.
func Recommend(directory []types.UserRecord, connected map[string]struct{}, selfUID string, self types.Profile) Partition {
	myCollege := normalizeCollege(self.College)
	mySkills := loweredSet(self.Skills)

	var sameCollege, sharedSkills, remaining []types.UserRecord
	for _, u := range directory {
		if u.ID == selfUID {
			continue
		}
		if _, ok := connected[u.ID]; ok {
			continue
		}
		if !Eligible(u) {
			continue
		}
		switch {
		case myCollege != "" && normalizeCollege(u.College) == myCollege:
			sameCollege = append(sameCollege, u)
		case len(mySkills) > 0 && skillOverlap(u.Skills, mySkills) >= 2:
			sharedSkills = append(sharedSkills, u)
		default:
			remaining = append(remaining, u)
		}
	}

	recommended := make([]types.UserRecord, 0, len(sameCollege)+len(sharedSkills))
	recommended = append(recommended, sameCollege...)
	recommended = append(recommended, sharedSkills...)
	return Partition{Recommended: recommended, Remaining: remaining}
}

func normalizeCollege(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func loweredSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}

func skillOverlap(skills []string, against map[string]struct{}) int {
	n := 0
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := against[k]; ok {
			n++
		}
	}
	return n
}
