package handlers

import (
	"renovation-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and passes the signed-in identity to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if id, ok := middleware.CurrentIdentity(c); ok {
		data["CurrentUserName"] = id.DisplayName()
		data["IsAdmin"] = id.IsAdmin()
		data["IsAuthed"] = true
	}

	c.HTML(status, tmpl, data)
}
