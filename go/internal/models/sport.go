package models

import "github.com/google/uuid"

// Sport is an entry in the sports catalog
type Sport struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
