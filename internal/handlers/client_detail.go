package handlers

import (
	"errors"
	"net/http"
	"strings"

	"renovation-crm/internal/database"
	"renovation-crm/internal/models"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
)

func ShowClientDetail(c *gin.Context) {
	renderClientDetail(c, c.Param("id"), http.StatusOK, "")
}

// renderClientDetail loads the client with its processes, projects and the
// data the edit form needs.
func renderClientDetail(c *gin.Context, id string, status int, errMsg string) {
	client, err := database.GetClient(id)
	if err != nil {
		consoleError(c, err)
		return
	}
	processes, err := database.ListProcesses(database.ProcessFilter{ClientID: id})
	if err != nil {
		consoleError(c, err)
		return
	}
	projects, err := database.ListProjectsByClient(id)
	if err != nil {
		consoleError(c, err)
		return
	}
	statuses, err := database.GetStatuses()
	if err != nil {
		consoleError(c, err)
		return
	}
	users, err := database.ListUsers()
	if err != nil {
		consoleError(c, err)
		return
	}

	render(c, status, "client_detail.html", gin.H{
		"client":    client,
		"isCompany": client.ClientType == models.ClientCompany,
		"processes": processes,
		"projects":  projects,
		"statuses":  statuses,
		"users":     users,
		"error":     errMsg,
	})
}

func ConsoleAddProcess(c *gin.Context) {
	id := c.Param("id")
	_, err := database.CreateProcess(id, c.PostForm("text"), c.PostForm("responsibleUserId"))
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			renderClientDetail(c, id, http.StatusBadRequest, "Process text is required")
			return
		}
		consoleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/clients/"+id)
}

func ConsoleCloseProcess(c *gin.Context) {
	process, err := database.CloseProcess(c.Param("id"), models.ProcessStatus(c.PostForm("status")))
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			c.String(http.StatusBadRequest, "invalid status")
		case errors.Is(err, database.ErrProcessClosed):
			c.String(http.StatusBadRequest, "process is already closed")
		default:
			consoleError(c, err)
		}
		return
	}
	c.Redirect(http.StatusFound, backTo(c, "/admin/clients/"+process.ClientID))
}

func ConsoleAddProject(c *gin.Context) {
	id := c.Param("id")
	if _, err := database.CreateProject(id, c.PostForm("name")); err != nil {
		consoleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/clients/"+id)
}

func ConsoleSetProjectStatus(c *gin.Context) {
	project, err := database.SetProjectStatus(c.Param("id"), models.ProjectStatus(c.PostForm("status")))
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			c.String(http.StatusBadRequest, "invalid status")
			return
		}
		consoleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/clients/"+project.ClientID)
}

// backTo honours a "next" form value that stays inside the console.
func backTo(c *gin.Context, fallback string) string {
	next := c.PostForm("next")
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}
