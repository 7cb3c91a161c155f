package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a login allowed by the database auth backend. Boards are not
// stored, so this is the only table.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"size:64;uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
