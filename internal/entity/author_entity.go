package entity

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	Id          uuid.UUID
	Email       string
	DisplayName string
	Bio         string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
