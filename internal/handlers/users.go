package handlers

import (
	"errors"
	"net/http"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"min=6"`
	Role     string `json:"role" form:"role"`
	Name     string `json:"name" form:"name"`
}

func (r createUserRequest) create() (*models.User, error) {
	return database.CreateUser(r.Email, r.Password, models.ParseRole(r.Role), r.Name)
}

func ListUsers(c *gin.Context) {
	users, err := database.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser is admin only; the route enforces it.
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, err := req.create()
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).Info("user created",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
		zap.String("role", string(user.Role)),
	)
	c.JSON(http.StatusCreated, user)
}

//
// console
//

func ShowUsers(c *gin.Context) {
	renderUsers(c, http.StatusOK, "")
}

func renderUsers(c *gin.Context, status int, errMsg string) {
	users, err := database.ListUsers()
	if err != nil {
		consoleError(c, err)
		return
	}
	render(c, status, "users.html", gin.H{
		"users": users,
		"error": errMsg,
	})
}

func ConsoleCreateUser(c *gin.Context) {
	var form createUserRequest
	if err := c.ShouldBind(&form); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			renderUsers(c, http.StatusBadRequest, "A valid email is required and the password must be at least 6 characters")
			return
		}
		renderUsers(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	if _, err := form.create(); err != nil {
		switch {
		case errors.Is(err, database.ErrEmailTaken):
			renderUsers(c, http.StatusBadRequest, "A user with this email already exists")
		default:
			consoleError(c, err)
		}
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}
