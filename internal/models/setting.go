package models

// Setting is a key/value row; values are JSON documents.
type Setting struct {
	Key   string `gorm:"primaryKey;size:100"`
	Value string `gorm:"type:text;not null"`
}

const SettingStatuses = "statuses"

// DefaultStatuses is used whenever no valid list is stored. The first entry is
// the status of new leads.
var DefaultStatuses = []string{"interested", "offer ready", "contract", "closed"}
