package database

import (
	"fmt"
	"strings"

	"renovation-crm/internal/models"
	"renovation-crm/internal/validation"
)

func ListProjectsByClient(clientID string) ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Where("client_id = ?", clientID).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject starts an in-progress project; a blank name becomes DefaultProjectName.
func CreateProject(clientID, name string) (*models.Project, error) {
	exists, err := ClientExists(clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultProjectName
	}

	project := models.Project{
		ClientID: clientID,
		Name:     name,
		Status:   models.ProjectInProgress,
	}
	if err := DB.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// SetProjectStatus switches between in-progress and closed in either direction.
func SetProjectStatus(id string, status models.ProjectStatus) (*models.Project, error) {
	if !status.Valid() {
		return nil, validation.Single("status", validation.ReasonInvalid)
	}

	var project models.Project
	if err := DB.First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}

	project.Status = status
	if err := DB.Save(&project).Error; err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return &project, nil
}
