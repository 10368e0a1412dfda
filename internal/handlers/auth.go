package handlers

import (
	"errors"
	"net/http"
	"strings"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/middleware"
	"renovation-crm/internal/models"
	"renovation-crm/internal/security"
	"renovation-crm/internal/validation"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type loginUser struct {
	ID    string          `json:"id,omitempty"`
	Email string          `json:"email,omitempty"`
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// authenticate exchanges credentials for a token. The admin secret is accepted
// as a password regardless of the email field.
func authenticate(req loginRequest, adminSecret string) (loginResponse, error) {
	if security.SecretEqual(req.Password, adminSecret) {
		return loginResponse{
			Token: adminSecret,
			User:  loginUser{Role: models.RoleAdmin, Name: "Admin"},
		}, nil
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return loginResponse{}, database.ErrInvalidCredentials
	}

	user, err := database.VerifyUser(email, req.Password)
	if err != nil {
		return loginResponse{}, err
	}
	token, err := database.CreateSession(user.ID)
	if err != nil {
		return loginResponse{}, err
	}

	return loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Email: user.Email, Role: user.Role, Name: user.Name},
	}, nil
}

// Login is POST /api/auth/login.
func Login(adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		resp, err := authenticate(req, adminSecret)
		if err != nil {
			if errors.Is(err, database.ErrInvalidCredentials) {
				logger.WithContext(c.Request.Context()).Info("login rejected", zap.String("email", logger.MaskEmail(req.Email)))
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

//
// console
//

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

func ConsoleLogin(adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form loginRequest
		if err := c.ShouldBind(&form); err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Password is required", "email": form.Email})
				return
			}
			render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
			return
		}

		resp, err := authenticate(form, adminSecret)
		if err != nil {
			switch {
			case errors.Is(err, database.ErrInvalidCredentials):
				render(c, http.StatusUnauthorized, "login.html", gin.H{"error": "Wrong email or password", "email": form.Email})
			default:
				logger.WithContext(c.Request.Context()).Error("console login failed", zap.Error(err))
				render(c, http.StatusInternalServerError, "login.html", gin.H{"error": "Login failed, try again"})
			}
			return
		}

		sess := sessions.Default(c)
		sess.Set(middleware.SessionTokenKey, resp.Token)
		_ = sess.Save()

		c.Redirect(http.StatusFound, "/admin")
	}
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}
