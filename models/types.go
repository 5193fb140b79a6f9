package models

import "time"

// Confirmation states for a pending submission.
// A row is created at StateUnconfirmed and removed when it resolves, so under
// the auto-publish policy only StateUnconfirmed occurs in live rows. The other
// values are kept for compatibility with database files written by earlier
// revisions of the site.
const (
	StateUnconfirmed             = 0
	StateConfirmedPublished      = 1
	StateConfirmedAwaitingReview = 3
)

// Dashboard filter constants
const (
	FilterAll          = "all"
	FilterValidated    = "validated"
	FilterNotValidated = "not_validated"
)

// PageSize is the fixed number of quotes per dashboard page.
const PageSize = 10

// Request types

type ListingQuery struct {
	Search       string
	FilterStatus string
	Page         int
}

// Response types

type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Domain types

type PendingSubmission struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Text      string    `json:"text"`
	Email     string    `json:"email"`
	Confirmed int       `json:"-"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type Quote struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Validated bool      `json:"validated"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicQuote is the wire shape of GET /api/quotes.
type PublicQuote struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// QuoteRow is a published quote as shown on the admin dashboard,
// with a humanized submission age alongside the raw record.
type QuoteRow struct {
	Quote
	SubmittedAgo string `json:"submitted_ago"`
}

// ListingResult is one dashboard page over the published quotes.
type ListingResult struct {
	Quotes     []QuoteRow `json:"quotes"`
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
}

// DashboardData is everything the admin dashboard view needs.
type DashboardData struct {
	Listing      ListingResult
	Pending      []PendingSubmission
	Search       string
	FilterStatus string
	Maintenance  bool
	MaintMessage string
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
