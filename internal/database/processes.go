package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"renovation-crm/internal/models"
	"renovation-crm/internal/validation"
)

// ProcessFilter narrows process listings; zero fields are ignored.
type ProcessFilter struct {
	ClientID          string
	ResponsibleUserID string
	Status            models.ProcessStatus
}

// ListProcesses returns matching processes, newest first.
func ListProcesses(f ProcessFilter) ([]models.Process, error) {
	q := DB.Order("created_at desc")
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ResponsibleUserID != "" {
		q = q.Where("responsible_user_id = ?", f.ResponsibleUserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var processes []models.Process
	if err := q.Find(&processes).Error; err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return processes, nil
}

// ListProcessViews is ListProcesses with each owning client's name attached.
func ListProcessViews(f ProcessFilter) ([]models.ProcessView, error) {
	processes, err := ListProcesses(f)
	if err != nil {
		return nil, err
	}
	names, err := clientNames()
	if err != nil {
		return nil, fmt.Errorf("load client names: %w", err)
	}

	views := make([]models.ProcessView, len(processes))
	for i, p := range processes {
		name, ok := names[p.ClientID]
		if !ok {
			name = models.MissingClientName
		}
		views[i] = models.ProcessView{Process: p, ClientName: name}
	}
	return views, nil
}

// CreateProcess opens a new process for an existing client.
func CreateProcess(clientID, text string, responsibleUserID string) (*models.Process, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validation.Single("text", validation.ReasonRequired)
	}

	exists, err := ClientExists(clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	process := models.Process{
		ClientID: clientID,
		Text:     text,
		Status:   models.ProcessOpen,
	}
	if id := strings.TrimSpace(responsibleUserID); id != "" {
		if _, err := GetUser(id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, validation.Single("responsibleUserId", validation.ReasonInvalid)
			}
			return nil, err
		}
		process.ResponsibleUserID = &id
	}

	if err := DB.Create(&process).Error; err != nil {
		return nil, fmt.Errorf("create process: %w", err)
	}
	return &process, nil
}

func GetProcess(id string) (*models.Process, error) {
	var process models.Process
	if err := DB.First(&process, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &process, nil
}

// CloseProcess moves an open process to done or failed and stamps ClosedAt.
// Closed processes are terminal.
func CloseProcess(id string, status models.ProcessStatus) (*models.Process, error) {
	if !status.IsClosing() {
		return nil, validation.Single("status", validation.ReasonInvalid)
	}

	process, err := GetProcess(id)
	if err != nil {
		return nil, err
	}
	if process.Status != models.ProcessOpen {
		return nil, ErrProcessClosed
	}

	res := DB.Model(&models.Process{}).
		Where("id = ? AND status = ?", id, models.ProcessOpen).
		Updates(map[string]any{"status": status, "closed_at": time.Now()})
	if res.Error != nil {
		return nil, fmt.Errorf("close process: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProcessClosed
	}
	return GetProcess(id)
}
