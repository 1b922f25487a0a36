// File: internal/client/model.go
package client

import (
	"time"

	"github.com/google/uuid"

	"salehunt_backend/internal/common"
)

// Client is a customer record scoped to a workspace. The table keeps the
// product's Portuguese naming.
type Client struct {
	common.BaseModel
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index:idx_clientes_workspace"`
	Name        string    `gorm:"type:text;not null"`
	Email       *string   `gorm:"type:varchar(255)"`
	Phone       *string   `gorm:"type:varchar(50)"`
	Company     *string   `gorm:"type:text"`
	Document    *string   `gorm:"type:varchar(20)"`
}

// TableName specifies the table name for the Client model.
func (Client) TableName() string {
	return "clientes"
}

// --- DTOs ---

type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company  *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Document *string `json:"document,omitempty" binding:"omitempty,max=20"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company  *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Document *string `json:"document,omitempty" binding:"omitempty,max=20"`
}

type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Document  *string   `json:"document,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a Client model to a ClientResponse DTO.
func ToClientResponse(cl *Client) ClientResponse {
	return ClientResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		Email:     cl.Email,
		Phone:     cl.Phone,
		Company:   cl.Company,
		Document:  cl.Document,
		CreatedAt: cl.CreatedAt,
		UpdatedAt: cl.UpdatedAt,
	}
}
