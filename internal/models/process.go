package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessStatus string

const (
	ProcessOpen   ProcessStatus = "open"
	ProcessDone   ProcessStatus = "done"
	ProcessFailed ProcessStatus = "failed"
)

// IsClosing reports whether s is a valid target of the close action.
func (s ProcessStatus) IsClosing() bool {
	return s == ProcessDone || s == ProcessFailed
}

// Process is a follow-up task against one client. ClosedAt is set iff Status != open.
type Process struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	ClientID string `gorm:"size:36;not null;index" json:"clientId"`

	Text   string        `gorm:"type:text;not null" json:"text"`
	Status ProcessStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	ResponsibleUserID *string `gorm:"size:36;index" json:"responsibleUserId,omitempty"`
	ResponsibleUser   *User   `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

func (p *Process) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProcessView is a process enriched with its client's display name.
type ProcessView struct {
	Process
	ClientName string `json:"clientName"`
}

// MissingClientName is shown for processes whose client no longer exists.
const MissingClientName = "–"
