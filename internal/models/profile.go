package models

import "time"

// Profile represents a registered user and their public profile
type Profile struct {
	ID           string    `json:"id" db:"id"`
	Username     *string   `json:"username,omitempty" db:"username"`
	FullName     *string   `json:"fullName,omitempty" db:"full_name"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	Email        string    `json:"email" db:"email"`
	Password     *string   `json:"-" db:"password_hash"` // Never expose in JSON
	HasPassword  bool      `json:"hasPassword" db:"has_password"`
	AuthProvider string    `json:"authProvider" db:"auth_provider"` // 'email' or 'google'
	GoogleID     *string   `json:"-" db:"google_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileResponse is what we send to clients (without sensitive data)
type ProfileResponse struct {
	ID           string    `json:"id"`
	Username     *string   `json:"username,omitempty"`
	FullName     *string   `json:"fullName,omitempty"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Email        string    `json:"email"`
	HasPassword  bool      `json:"hasPassword"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse converts Profile to ProfileResponse
func (p *Profile) ToResponse() ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Username:     p.Username,
		FullName:     p.FullName,
		AvatarURL:    p.AvatarURL,
		Bio:          p.Bio,
		Email:        p.Email,
		HasPassword:  p.HasPassword,
		AuthProvider: p.AuthProvider,
		CreatedAt:    p.CreatedAt,
	}
}

// Author is the trimmed profile embedded in posts, comments and requests
type Author struct {
	ID        string  `json:"id"`
	Username  *string `json:"username,omitempty"`
	FullName  *string `json:"fullName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
