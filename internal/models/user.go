package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User is the owner of all other resources. Users are managed by the
// identity provider, the ID is the subject of its tokens.
type User struct {
	DefaultModel
	Username string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	return nil
}

// ProvisionUser returns the user with the ID, creating it on first use.
func ProvisionUser(db *gorm.DB, id uuid.UUID, username string) (User, error) {
	user := User{DefaultModel: DefaultModel{ID: id}, Username: username}

	// Concurrent first requests of the same user must not fail
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
	if err != nil {
		return User{}, err
	}

	err = db.First(&user, "id = ?", id).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}
