package handlers

import (
	"net/http"

	"renovation-crm/internal/database"
	"renovation-crm/internal/middleware"
	"renovation-crm/internal/models"

	"github.com/gin-gonic/gin"
)

// ListProcesses is GET /api/processes with optional status and clientId filters.
func ListProcesses(c *gin.Context) {
	views, err := database.ListProcessViews(database.ProcessFilter{
		Status:   models.ProcessStatus(c.Query("status")),
		ClientID: c.Query("clientId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func ListClientProcesses(c *gin.Context) {
	processes, err := database.ListProcesses(database.ProcessFilter{ClientID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, processes)
}

type createProcessRequest struct {
	Text              string `json:"text"`
	ResponsibleUserID string `json:"responsibleUserId"`
}

func CreateClientProcess(c *gin.Context) {
	var req createProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	process, err := database.CreateProcess(c.Param("id"), req.Text, req.ResponsibleUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, process)
}

type closeProcessRequest struct {
	Status models.ProcessStatus `json:"status"`
}

func CloseProcess(c *gin.Context) {
	var req closeProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	process, err := database.CloseProcess(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

// taskOwner decides whose tasks the caller sees. Admins may pick any user;
// others only themselves. The service account has no tasks of its own.
func taskOwner(id middleware.Identity, requested string) string {
	if requested != "" && id.IsAdmin() {
		return requested
	}
	return id.UserID()
}

func MyTasks(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	target := taskOwner(id, c.Query("responsibleUserId"))
	if target == "" {
		c.JSON(http.StatusOK, []models.ProcessView{})
		return
	}

	views, err := database.ListProcessViews(database.ProcessFilter{ResponsibleUserID: target})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ShowTasks is the console view of the signed-in user's processes.
func ShowTasks(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)

	var views []models.ProcessView
	if target := taskOwner(id, c.Query("user")); target != "" {
		var err error
		views, err = database.ListProcessViews(database.ProcessFilter{ResponsibleUserID: target})
		if err != nil {
			consoleError(c, err)
			return
		}
	}

	var users []models.User
	if id.IsAdmin() {
		var err error
		if users, err = database.ListUsers(); err != nil {
			consoleError(c, err)
			return
		}
	}

	render(c, http.StatusOK, "tasks.html", gin.H{
		"processes":    views,
		"users":        users,
		"selectedUser": c.Query("user"),
	})
}
