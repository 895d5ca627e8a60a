package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions for budgeting and reporting.
//
// A category with a nil UserID is a global category that is visible to all
// users, but can only be managed by the instance administrator.
type Category struct {
	DefaultModel
	UserID *uuid.UUID `gorm:"index"`
	Name   string
	Color  string
	Icon   string
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	c.Icon = strings.TrimSpace(c.Icon)

	return nil
}

// checkCategoryAccess verifies that the category is either global or owned
// by the user. It is used by resources referencing a category.
func checkCategoryAccess(tx *gorm.DB, categoryID, userID uuid.UUID) error {
	err := tx.
		Where("id = ?", categoryID).
		Where(tx.Where("user_id = ?", userID).Or("user_id IS NULL")).
		First(&Category{}).Error
	if err != nil {
		return ErrCategoryNotAccessible
	}

	return nil
}
