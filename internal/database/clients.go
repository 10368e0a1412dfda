package database

import (
	"fmt"
	"time"

	"renovation-crm/internal/models"
)

// ListClients returns every client, newest first.
func ListClients() ([]models.Client, error) {
	var clients []models.Client
	if err := DB.Order("created_at desc").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func GetClient(id string) (*models.Client, error) {
	var client models.Client
	if err := DB.First(&client, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func ClientExists(id string) (bool, error) {
	var count int64
	if err := DB.Model(&models.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateClient validates the draft, assigns the default status and inserts the row.
func CreateClient(draft models.ClientDraft, source models.ClientSource) (*models.Client, error) {
	statuses, err := GetStatuses()
	if err != nil {
		return nil, err
	}

	client, err := models.NewClient(draft, statuses[0], source)
	if err != nil {
		return nil, err
	}
	if err := DB.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &client, nil
}

// UpdateClient applies only the supplied fields. Concurrent edits are last-write-wins.
func UpdateClient(id string, patch models.ClientPatch) (*models.Client, error) {
	existing, err := GetClient(id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.Changes(*existing)
	if err != nil {
		return nil, err
	}
	changes["updated_at"] = time.Now()

	if err := DB.Model(&models.Client{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return GetClient(id)
}

// DeleteClient hard-deletes the client; processes and projects go with it via
// the foreign key cascade. It reports whether a row existed.
func DeleteClient(id string) (bool, error) {
	res := DB.Where("id = ?", id).Delete(&models.Client{})
	if res.Error != nil {
		return false, fmt.Errorf("delete client: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// clientNames maps client id to display name.
func clientNames() (map[string]string, error) {
	var rows []struct {
		ID   string
		Name string
	}
	if err := DB.Model(&models.Client{}).Select("id", "name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
