package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps transaction descriptions to a category during import.
//
// The Match field supports the glob wildcard "*". Rules are applied in
// ascending priority order, the first matching rule wins.
type MatchRule struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID `gorm:"index"`
	Priority   uint
	Match      string
	CategoryID uuid.UUID
}

func (m *MatchRule) BeforeSave(_ *gorm.DB) error {
	m.Match = strings.TrimSpace(m.Match)
	if m.Match == "" {
		return ErrMatchRuleMatchEmpty
	}

	return nil
}

func (m *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MatchRule)
	return m.checkIntegrity(tx, *toSave)
}

func (m *MatchRule) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(MatchRule)

	if tx.Statement.Changed("CategoryID") {
		if toSave.UserID == uuid.Nil {
			toSave.UserID = m.UserID
		}

		return m.checkIntegrity(tx, toSave)
	}

	return nil
}

func (m *MatchRule) checkIntegrity(tx *gorm.DB, toSave MatchRule) error {
	return checkCategoryAccess(tx, toSave.CategoryID, toSave.UserID)
}
