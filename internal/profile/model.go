// File: internal/profile/model.go
package profile

import (
	"time"

	"github.com/google/uuid"

	"salehunt_backend/internal/shared"
)

// Profile is the application-side record for an auth provider identity.
// Credentials live with the provider; this row carries everything else the
// dashboard needs about a user.
type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirebaseUID         string    `gorm:"type:varchar(255);uniqueIndex"`
	Email               *string   `gorm:"type:varchar(255);uniqueIndex"`
	FullName            *string   `gorm:"type:text"`
	AvatarURL           *string   `gorm:"type:text"`
	OnboardingCompleted bool      `gorm:"not null;default:false"`
	OnboardingStep      int       `gorm:"not null;default:1"`
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// ToShared converts the GORM model to the cross-package representation.
func (p *Profile) ToShared() *shared.Profile {
	return &shared.Profile{
		ID:                  p.ID,
		FirebaseUID:         p.FirebaseUID,
		Email:               p.Email,
		FullName:            p.FullName,
		AvatarURL:           p.AvatarURL,
		OnboardingCompleted: p.OnboardingCompleted,
		OnboardingStep:      p.OnboardingStep,
		LastLoginAt:         p.LastLoginAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// --- DTOs ---

// UpdateProfileRequest defines the editable profile fields.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty" binding:"omitempty,max=200"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

// ProfileResponse is the profile shape sent to the frontend.
type ProfileResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Email               *string    `json:"email,omitempty"`
	FullName            *string    `json:"full_name,omitempty"`
	AvatarURL           *string    `json:"avatar_url,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	OnboardingStep      int        `json:"onboarding_step"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// FromShared builds the response shape from the cross-package profile.
func FromShared(p *shared.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID,
		Email:               p.Email,
		FullName:            p.FullName,
		AvatarURL:           p.AvatarURL,
		OnboardingCompleted: p.OnboardingCompleted,
		OnboardingStep:      p.OnboardingStep,
		LastLoginAt:         p.LastLoginAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToProfileResponse converts a Profile model to its API response shape.
func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID,
		Email:               p.Email,
		FullName:            p.FullName,
		AvatarURL:           p.AvatarURL,
		OnboardingCompleted: p.OnboardingCompleted,
		OnboardingStep:      p.OnboardingStep,
		LastLoginAt:         p.LastLoginAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
