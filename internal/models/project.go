package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectClosed     ProjectStatus = "closed"

	DefaultProjectName = "Project"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectInProgress || s == ProjectClosed
}

type Project struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	ClientID string `gorm:"size:36;not null;index" json:"clientId"`

	Name   string        `gorm:"size:255;not null" json:"name"`
	Status ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
