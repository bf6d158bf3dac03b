package dto

// AuthResponse bundles the public org data with a fresh token pair.
type AuthResponse struct {
	Message      string          `json:"message,omitempty"`
	Org          OrganizationDTO `json:"org"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}
