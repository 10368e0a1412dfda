package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"renovation-crm/internal/database"

	"github.com/gin-gonic/gin"
)

func GetStatuses(c *gin.Context) {
	statuses, err := database.GetStatuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// decodeStatuses accepts either a bare JSON array or {"statuses": [...]}.
func decodeStatuses(body []byte) ([]string, bool) {
	var list []string
	if err := json.Unmarshal(body, &list); err == nil {
		return list, true
	}
	var wrapped struct {
		Statuses []string `json:"statuses"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return wrapped.Statuses, true
	}
	return nil, false
}

func PutStatuses(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "invalid request body")
		return
	}
	statuses, ok := decodeStatuses(body)
	if !ok {
		badRequest(c, "invalid request body")
		return
	}

	saved, err := database.SaveStatuses(statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

//
// console
//

func ShowSettings(c *gin.Context) {
	statuses, err := database.GetStatuses()
	if err != nil {
		consoleError(c, err)
		return
	}
	render(c, http.StatusOK, "settings.html", gin.H{
		"statuses": strings.Join(statuses, "\n"),
	})
}

// ConsoleSaveSettings takes one status per line.
func ConsoleSaveSettings(c *gin.Context) {
	lines := strings.Split(strings.ReplaceAll(c.PostForm("statuses"), "\r\n", "\n"), "\n")
	if _, err := database.SaveStatuses(lines); err != nil {
		consoleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/settings")
}
