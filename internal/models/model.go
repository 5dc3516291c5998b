package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all models of the backend.
//
// Rows are deleted for real, there is no soft deletion. Foreign keys
// rely on that for ON DELETE RESTRICT and CASCADE.
type DefaultModel struct {
	ID        uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce" gorm:"primaryKey"` // UUID for the resource
	CreatedAt time.Time `json:"createdAt" example:"2024-01-27T16:51:20.681938Z"`                     // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2024-03-05T08:02:11.175034Z"`                     // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates a UUID for the resource unless one is already set.
// Users keep the ID of their identity provider subject.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OwnedBy is a scope restricting a query on a table to rows of one user.
func OwnedBy(table string, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}
