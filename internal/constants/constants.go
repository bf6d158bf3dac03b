package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyOrgID       = "org_id"
	ContextKeyOrgUsername = "org_username"
	ContextKeyRequestID   = "request_id"
)

// Pagination
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 20
	MinPageLimit     = 1
)

// Security
const (
	MinPasswordLength = 8
	// MinAvailabilityCheckDuration is the wall-clock floor for username
	// availability checks, to resist enumeration via response timing.
	MinAvailabilityCheckDurationMs = 50
)

// Upload
const (
	MaxUploadSizeBytes = 5 * 1024 * 1024 // 5MB
)

// AllowedImageTypes is the MIME allow-list for image uploads.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Verification statuses an organization may hold.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// AllowedLoginStatuses lists the statuses permitted to authenticate.
var AllowedLoginStatuses = []string{StatusPending, StatusApproved, StatusVerified}
