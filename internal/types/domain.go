package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// RawUser mirrors the backend's user payload. Every field is optional; the
// backend makes no promises beyond "uid is present for valid accounts".
// Nothing outside NormalizeUser may read these fields.
type RawUser struct {
	UID            string   `json:"uid"`
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	ProfilePicture *string  `json:"profilePicture"`
	College        *string  `json:"college"`
	YearOfStudy    *string  `json:"yearOfStudy"`
	Branch         *string  `json:"branch"`
	Skills         []string `json:"skills"`
	Bio            *string  `json:"bio"`
	IsOnline       *bool    `json:"isOnline"`
	Gender         *string  `json:"gender"`
	Interests      []string `json:"interests"`
}

// UserRecord is the fully-defaulted directory entry used by all downstream
// code. No field is ever nil after normalization.
type UserRecord struct {
	ID             string   `json:"uid"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	ProfilePicture string   `json:"profilePicture"`
	College        string   `json:"college"`
	YearOfStudy    string   `json:"yearOfStudy"`
	Branch         string   `json:"branch"`
	Skills         []string `json:"skills"`
	Bio            string   `json:"bio"`
	IsOnline       bool     `json:"isOnline"`
	Gender         string   `json:"gender"`
	Interests      []string `json:"interests"`
}

// ConnectionEdge is one accepted connection between two users. Edges are
// undirected once accepted; fromUid/toUid only record who initiated.
type ConnectionEdge struct {
	FromUID string `json:"fromUid"`
	ToUID   string `json:"toUid"`
}

// IncomingRequest is a pending connection request directed at the current
// user. CreatedAt feeds the "time ago" label in the requests panel.
type IncomingRequest struct {
	From      string    `json:"from"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the current user's own editable profile.
type Profile struct {
	UID         string   `json:"uid"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	College     string   `json:"college"`
	YearOfStudy string   `json:"yearOfStudy"`
	Branch      string   `json:"branch"`
	Skills      []string `json:"skills"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
}

// ------------------------------
// Content feed entities
// ------------------------------

// Event is one entry in the campus events feed.
type Event struct {
	ID          string    `json:"eventId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	BannerURL   string    `json:"bannerUrl,omitempty"`
}

// Blog is one entry in the blog feed.
type Blog struct {
	ID          string    `json:"blogId"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Startup is one listing in the startups feed.
type Startup struct {
	ID          string   `json:"startupId"`
	Name        string   `json:"name"`
	Pitch       string   `json:"pitch,omitempty"`
	Founders    []string `json:"founders,omitempty"`
	WebsiteURL  string   `json:"websiteUrl,omitempty"`
	HiringRoles []string `json:"hiringRoles,omitempty"`
}

// Discount is one student-discount listing.
type Discount struct {
	ID        string     `json:"discountId"`
	Brand     string     `json:"brand"`
	Offer     string     `json:"offer"`
	Code      string     `json:"code,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Certification is one course/certification listing.
type Certification struct {
	ID       string `json:"certificationId"`
	Title    string `json:"title"`
	Provider string `json:"provider"`
	URL      string `json:"url,omitempty"`
}
