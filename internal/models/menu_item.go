package models

import (
	"time"

	"github.com/google/uuid"
)

type MenuItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       Amount    `json:"price"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MenuItemRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Category    string `json:"category" validate:"required,max=64"`
	Price       Amount `json:"price" validate:"required"`
	IsAvailable *bool  `json:"is_available"`
}
