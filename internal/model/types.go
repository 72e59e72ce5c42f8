package model

// Listing limits enforced by the submit form and the API.
const (
	MinCodeLength = 3
	MaxCodeLength = 12
	MinPrice      = 1
	MaxPrice      = 999

	// HotPrice marks a listing worth highlighting in the feed.
	HotPrice = 900

	// MaxFeedbackReason is the longest reason the API accepts, in bytes.
	MaxFeedbackReason = 300

	// DefaultServer is the game server a listing belongs to when none is given.
	DefaultServer = "S1"
)

// Feed sort orders accepted by GET /feed.
const (
	SortByTime  = "time"
	SortByPrice = "price"
)

// Feedback resolution actions.
const (
	ActionKeep   = "keep"
	ActionDelete = "delete"
)

// -----------------------------------------------------------------------------
// Listings
// -----------------------------------------------------------------------------

// PriceItem is one listing as shown in the live feed.
type PriceItem struct {
	Code      string  `json:"code"`
	Price     float64 `json:"price"`
	Server    string  `json:"server,omitempty"`
	Timestamp int64   `json:"ts"`
}

// IsHot reports whether the listing is priced high enough to highlight.
func (p PriceItem) IsHot() bool {
	return p.Price >= HotPrice
}

// Key identifies a listing within the feed. The same code can be listed
// again later, so the timestamp is part of the key.
func (p PriceItem) Key() string {
	return p.Code + "@" + formatInt(p.Timestamp)
}

// SubmitRequest is the body of POST /submit.
type SubmitRequest struct {
	Code   string  `json:"code"`
	Price  float64 `json:"price"`
	Server string  `json:"server"`
}

// -----------------------------------------------------------------------------
// Feedback & Moderation
// -----------------------------------------------------------------------------

// FeedbackRequest reports a listing that looks wrong.
type FeedbackRequest struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ResolveFeedbackRequest is the body of POST /admin/feedback/{id}/resolve.
type ResolveFeedbackRequest struct {
	Action string `json:"action"`
}

// FeedbackMessage is a feedback report as stored by the API.
type FeedbackMessage struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Reason       string `json:"reason"`
	Reporter     string `json:"reporter"`
	CreatedAt    int64  `json:"createdAt"`
	Resolved     bool   `json:"resolved"`
	ResolvedAt   int64  `json:"resolvedAt,omitempty"`
	ResolvedBy   string `json:"resolvedBy,omitempty"`
	Action       string `json:"action,omitempty"`
	RemovedTime  int64  `json:"removedTime,omitempty"`
	RemovedPrice int64  `json:"removedPrice,omitempty"`
}

// AdminLogEntry records one moderation action.
type AdminLogEntry struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Actor     string            `json:"actor"`
	Timestamp int64             `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// -----------------------------------------------------------------------------
// Accounts
// -----------------------------------------------------------------------------

// AuthRequest is the body of the login and register endpoints.
type AuthRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	ID       string `json:"id"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserPublic is a user as listed to administrators.
type UserPublic struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	Banned   bool   `json:"banned"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// BanRequest is the body of PATCH /admin/users/{username}/ban.
type BanRequest struct {
	Banned bool `json:"banned"`
}
