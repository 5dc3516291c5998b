package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// CategoryType is the direction of all transactions in a category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports if the type is one of the known types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category classifies transactions. Its type determines if the
// transactions are income or expenses.
type Category struct {
	DefaultModel
	UserID uuid.UUID `gorm:"uniqueIndex:category_user_name"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`
	Name   string    `gorm:"uniqueIndex:category_user_name"`
	Type   CategoryType
}

// BeforeSave validates the category. The type of a category cannot change
// while transactions reference it as that would flip their direction.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if !c.Type.Valid() {
		return ErrCategoryTypeInvalid
	}

	if c.ID == uuid.Nil {
		return nil
	}

	var stored []CategoryType
	err := tx.Model(&Category{}).Where("id = ?", c.ID).Pluck("type", &stored).Error
	if err != nil {
		return err
	}

	if len(stored) == 0 || stored[0] == c.Type {
		return nil
	}

	var count int64
	err = tx.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryInUse
	}

	return nil
}

// BeforeDelete rejects deletion of categories that are in use.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	inUse, err := c.InUse(tx)
	if err != nil {
		return err
	}

	if inUse {
		return ErrCategoryInUse
	}

	return nil
}

// InUse reports if any transaction or budget goal references the category.
func (c Category) InUse(db *gorm.DB) (bool, error) {
	var transactions, goals int64

	err := db.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&transactions).Error
	if err != nil {
		return false, err
	}

	err = db.Model(&BudgetGoal{}).Where("category_id = ?", c.ID).Count(&goals).Error
	if err != nil {
		return false, err
	}

	return transactions+goals > 0, nil
}

// FindCategoryByName returns the category of the user with the name.
//
// An exact match is preferred. If there is none, the name is compared
// with Unicode case folding. Names are unique per user only as written,
// so several categories can match after folding. The first of them in
// name order is returned.
func FindCategoryByName(db *gorm.DB, userID uuid.UUID, name string) (Category, error) {
	var categories []Category
	err := db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return Category{}, err
	}

	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}

	fold := cases.Fold()
	folded := fold.String(name)
	for _, c := range categories {
		if fold.String(c.Name) == folded {
			return c, nil
		}
	}

	return Category{}, fmt.Errorf("%w category matching your query", ErrResourceNotFound)
}
