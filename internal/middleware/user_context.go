package middleware

import (
	"strings"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"
	"renovation-crm/internal/security"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "Identity"

	// SessionTokenKey is the console cookie session entry holding the credential.
	SessionTokenKey = "token"

	AdminSecretHeader = "X-Admin-Secret"
)

// Identity is the resolved caller. ServiceAccount is the admin secret holder,
// which has no user record.
type Identity struct {
	User           *models.User
	ServiceAccount bool
}

func (i Identity) IsAdmin() bool {
	return i.ServiceAccount || (i.User != nil && i.User.IsAdmin())
}

// UserID is empty for the service account.
func (i Identity) UserID() string {
	if i.User == nil {
		return ""
	}
	return i.User.ID
}

func (i Identity) DisplayName() string {
	if i.User != nil {
		return i.User.Name
	}
	return "Admin"
}

// Credential extracts the caller's credential: query "secret", the admin
// secret header, a bearer token, then the console session.
func Credential(c *gin.Context) string {
	if v := strings.TrimSpace(c.Query("secret")); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.GetHeader(AdminSecretHeader)); v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}
	if tok, ok := sessions.Default(c).Get(SessionTokenKey).(string); ok {
		return tok
	}
	return ""
}

// Resolve maps a credential to an identity. The admin secret wins over sessions.
func Resolve(credential, adminSecret string) (Identity, bool) {
	if credential == "" {
		return Identity{}, false
	}
	if security.SecretEqual(credential, adminSecret) {
		return Identity{ServiceAccount: true}, true
	}
	user, err := database.GetSessionUser(credential)
	if err != nil {
		return Identity{}, false
	}
	return Identity{User: user}, true
}

// InjectIdentity resolves the caller once per request. It never aborts;
// RequireAuth and friends decide what an anonymous caller may do.
func InjectIdentity(adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := Resolve(Credential(c), adminSecret); ok {
			c.Set(identityKey, id)
			if id.User != nil {
				logger.WithContext(c.Request.Context()).Debug("session resolved", zap.String("user_id", id.User.ID))
			}
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
