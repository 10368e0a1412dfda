package handlers

import (
	"net/http"

	"renovation-crm/internal/database"
	"renovation-crm/internal/models"

	"github.com/gin-gonic/gin"
)

func ListClientProjects(c *gin.Context) {
	projects, err := database.ListProjectsByClient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func CreateClientProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	project, err := database.CreateProject(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

type projectStatusRequest struct {
	Status models.ProjectStatus `json:"status"`
}

func UpdateProject(c *gin.Context) {
	var req projectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	project, err := database.SetProjectStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
