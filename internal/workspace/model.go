// File: internal/workspace/model.go
package workspace

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBrandColor is applied to every workspace until the owner picks one.
const DefaultBrandColor = "#12BF7D"

// Workspace is the selling entity a user configures during onboarding. A
// placeholder row is created when the wizard starts and filled in step by
// step.
type Workspace struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:text;not null;default:''"`
	Slug         *string   `gorm:"type:varchar(120)"`
	CNPJ         *string   `gorm:"type:varchar(20);column:cnpj"`
	BrandColor   string    `gorm:"type:varchar(9);not null;default:'#12BF7D'"`
	BrandLogoURL *string   `gorm:"type:text"`
	CompanySize  *string   `gorm:"type:varchar(50)"`
	MarketSector *string   `gorm:"type:varchar(100)"`
	TeamSize     *string   `gorm:"type:varchar(50)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Workspace model.
func (Workspace) TableName() string {
	return "workspaces"
}

// Color is a custom brand color saved by a user. The hex value is globally
// unique; saving an existing color is a no-op.
type Color struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Hex       string     `gorm:"type:varchar(9);not null;uniqueIndex"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Color model.
func (Color) TableName() string {
	return "colors"
}

// --- DTOs ---

// UpdateWorkspaceRequest carries the fields the onboarding wizard and the
// settings page can change. All fields are optional; only present fields are
// applied.
type UpdateWorkspaceRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	CNPJ         *string `json:"cnpj,omitempty" binding:"omitempty,max=20"`
	BrandColor   *string `json:"brand_color,omitempty" binding:"omitempty,hexcolor"`
	BrandLogoURL *string `json:"brand_logo_url,omitempty" binding:"omitempty,url"`
	CompanySize  *string `json:"company_size,omitempty" binding:"omitempty,max=50"`
	MarketSector *string `json:"market_sector,omitempty" binding:"omitempty,max=100"`
	TeamSize     *string `json:"team_size,omitempty" binding:"omitempty,max=50"`
}

// CreateColorRequest saves a custom brand color.
type CreateColorRequest struct {
	Hex string `json:"hex" binding:"required,hexcolor"`
}

// WorkspaceResponse is the workspace shape sent to the frontend.
type WorkspaceResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Slug         *string   `json:"slug,omitempty"`
	CNPJ         *string   `json:"cnpj,omitempty"`
	BrandColor   string    `json:"brand_color"`
	BrandLogoURL *string   `json:"brand_logo_url,omitempty"`
	CompanySize  *string   `json:"company_size,omitempty"`
	MarketSector *string   `json:"market_sector,omitempty"`
	TeamSize     *string   `json:"team_size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToWorkspaceResponse converts a Workspace model to its API response shape.
func ToWorkspaceResponse(w *Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:           w.ID,
		OwnerID:      w.OwnerID,
		Name:         w.Name,
		Slug:         w.Slug,
		CNPJ:         w.CNPJ,
		BrandColor:   w.BrandColor,
		BrandLogoURL: w.BrandLogoURL,
		CompanySize:  w.CompanySize,
		MarketSector: w.MarketSector,
		TeamSize:     w.TeamSize,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// ColorResponse is the saved color shape sent to the frontend.
type ColorResponse struct {
	ID        uuid.UUID `json:"id"`
	Hex       string    `json:"hex"`
	CreatedAt time.Time `json:"created_at"`
}

func ToColorResponse(c *Color) ColorResponse {
	return ColorResponse{ID: c.ID, Hex: c.Hex, CreatedAt: c.CreatedAt}
}
