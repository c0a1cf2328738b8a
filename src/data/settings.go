package data

import (
	"context"

	"gorm.io/gorm"
)

// Setting represents a configuration setting stored in the database
type Setting struct {
	ID     uint8  `gorm:"primaryKey"`
	Name   string `gorm:"size:32;not null;uniqueIndex"`
	Value  string `gorm:"type:text;not null"`
	Active uint8  `gorm:"not null"`
}

// Settings is a snapshot of the active rows in the settings table.
type Settings map[string]string

// Get returns the value of name, or "" when unset.
func (s Settings) Get(name string) string {
	return s[name]
}

// LoadSettings reads all active settings.
func LoadSettings(ctx context.Context, db *gorm.DB) (Settings, error) {
	var rows []Setting
	if err := db.WithContext(ctx).Where("active = ?", 1).Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(Settings, len(rows))
	for _, row := range rows {
		settings[row.Name] = row.Value
	}
	return settings, nil
}
