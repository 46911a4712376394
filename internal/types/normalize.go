package types

// NormalizeUser is the single place allowed to look at a RawUser's optional
// fields. It returns a UserRecord with every missing field replaced by its
// zero default (empty string, false, empty slice) and reports whether the
// record is usable at all; records without a uid are dropped.
func NormalizeUser(raw RawUser) (UserRecord, bool) {
	if raw.UID == "" {
		return UserRecord{}, false
	}
	return UserRecord{
		ID:             raw.UID,
		FirstName:      derefString(raw.FirstName),
		LastName:       derefString(raw.LastName),
		ProfilePicture: derefString(raw.ProfilePicture),
		College:        derefString(raw.College),
		YearOfStudy:    derefString(raw.YearOfStudy),
		Branch:         derefString(raw.Branch),
		Skills:         copyStrings(raw.Skills),
		Bio:            derefString(raw.Bio),
		IsOnline:       raw.IsOnline != nil && *raw.IsOnline,
		Gender:         derefString(raw.Gender),
		Interests:      copyStrings(raw.Interests),
	}, true
}

// NormalizeUsers maps a raw directory payload into UserRecords, dropping
// entries without a uid. Order is preserved.
func NormalizeUsers(raw []RawUser) []UserRecord {
	out := make([]UserRecord, 0, len(raw))
	for _, r := range raw {
		if u, ok := NormalizeUser(r); ok {
			out = append(out, u)
		}
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
