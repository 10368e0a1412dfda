package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"renovation-crm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetStatuses resolves the status vocabulary: stored row, then a parse-valid
// value, then the built-in default. The result is never empty.
func GetStatuses() ([]string, error) {
	var setting models.Setting
	err := DB.First(&setting, "key = ?", models.SettingStatuses).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ResolveStatuses(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	return ResolveStatuses(&setting.Value), nil
}

// ResolveStatuses applies the fallback chain to a stored value (nil = no row).
func ResolveStatuses(stored *string) []string {
	if stored == nil {
		return DefaultStatuses()
	}
	if statuses, ok := ParseStatuses(*stored); ok {
		return statuses
	}
	return DefaultStatuses()
}

// ParseStatuses accepts a JSON array of strings with at least one non-blank entry.
func ParseStatuses(raw string) ([]string, bool) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	values = cleanStatuses(values)
	return values, len(values) > 0
}

// SaveStatuses replaces the vocabulary. Blank entries are dropped and an empty
// result stores the default list instead.
func SaveStatuses(statuses []string) ([]string, error) {
	toSave := cleanStatuses(statuses)
	if len(toSave) == 0 {
		toSave = DefaultStatuses()
	}

	raw, err := json.Marshal(toSave)
	if err != nil {
		return nil, err
	}

	setting := models.Setting{Key: models.SettingStatuses, Value: string(raw)}
	err = DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, fmt.Errorf("save statuses: %w", err)
	}
	return toSave, nil
}

func DefaultStatuses() []string {
	return append([]string(nil), models.DefaultStatuses...)
}

func cleanStatuses(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
