package server

import (
	"crypto/sha256"
	"html/template"
	"net/http"
	"slices"
	"time"

	"renovation-crm/internal/config"
	"renovation-crm/internal/handlers"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/middleware"
	"renovation-crm/internal/models"
	"renovation-crm/internal/notify"
	"renovation-crm/internal/validation"
	"renovation-crm/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return ""
}

func userName(users []models.User, id *string) string {
	if id == nil {
		return ""
	}
	for _, u := range users {
		if u.ID == *id {
			return u.Name
		}
	}
	return *id
}

func templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"maskEmail": logger.MaskEmail,
		"maskPhone": logger.MaskPhone,
		"date":      formatDate,
		"userName":  userName,
		"hasStatus": func(list []string, s string) bool { return slices.Contains(list, s) },
	}).ParseFS(web.Templates, "templates/*.html"))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.AdminSecretHeader, "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	return cfg
}

// sessionStore signs and encrypts the console cookie; it carries a credential.
func sessionStore(cfg *config.Config) sessions.Store {
	encKey := sha256.Sum256([]byte("console-session:" + cfg.SessionSecret))
	store := cookie.NewStore([]byte(cfg.SessionSecret), encKey[:])
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

func NewRouter(cfg *config.Config, notifier notify.Notifier, lookup handlers.SettlementLookup) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	binding.Validator = validation.Binding{}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger.L()), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	r.SetHTMLTemplate(templates())

	r.Use(sessions.Sessions("crm_session", sessionStore(cfg)))
	r.Use(middleware.InjectIdentity(cfg.AdminSecret))

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// public intake
	r.GET("/", handlers.IndexPage)
	r.POST("/callback", handlers.SubmitCallbackForm(notifier))

	// JSON API
	api := r.Group("/api")
	api.POST("/auth/login", handlers.Login(cfg.AdminSecret))
	api.POST("/callback-requests", handlers.CreateCallbackRequest(notifier))
	api.GET("/postal-code/:code", handlers.LookupPostalCode(lookup))

	authed := api.Group("")
	authed.Use(middleware.RequireAuth())

	authed.GET("/clients", handlers.ListClients)
	authed.POST("/clients", handlers.CreateClient)
	authed.GET("/clients/:id", handlers.GetClient)
	authed.PATCH("/clients/:id", handlers.UpdateClient)
	authed.DELETE("/clients/:id", handlers.DeleteClient)
	authed.GET("/clients/:id/processes", handlers.ListClientProcesses)
	authed.POST("/clients/:id/processes", handlers.CreateClientProcess)
	authed.GET("/clients/:id/projects", handlers.ListClientProjects)
	authed.POST("/clients/:id/projects", handlers.CreateClientProject)

	authed.GET("/processes", handlers.ListProcesses)
	authed.PATCH("/processes/:id", handlers.CloseProcess)
	authed.PATCH("/projects/:id", handlers.UpdateProject)
	authed.GET("/my-tasks", handlers.MyTasks)

	authed.GET("/settings/statuses", handlers.GetStatuses)
	authed.PUT("/settings/statuses", handlers.PutStatuses)

	authed.GET("/users", handlers.ListUsers)
	authed.POST("/users", middleware.RequireAdmin(), handlers.CreateUser)

	authed.GET("/exports/clients.xlsx", handlers.ExportClients)

	// admin console
	r.GET("/admin/login", handlers.ShowLogin)
	r.POST("/admin/login", handlers.ConsoleLogin(cfg.AdminSecret))
	r.GET("/admin/logout", handlers.Logout)

	console := r.Group("/admin")
	console.Use(middleware.RequireConsoleAuth())

	console.GET("", handlers.Dashboard)
	console.GET("/clients/:id", handlers.ShowClientDetail)
	console.POST("/clients/:id/edit", handlers.ConsoleUpdateClient)
	console.POST("/clients/:id/processes", handlers.ConsoleAddProcess)
	console.POST("/clients/:id/projects", handlers.ConsoleAddProject)
	console.POST("/processes/:id/close", handlers.ConsoleCloseProcess)
	console.POST("/projects/:id/status", handlers.ConsoleSetProjectStatus)
	console.GET("/tasks", handlers.ShowTasks)
	console.GET("/users", handlers.ShowUsers)
	console.GET("/settings", handlers.ShowSettings)
	console.POST("/settings", handlers.ConsoleSaveSettings)

	// deleting clients and adding users is admin only
	console.POST("/clients/:id/delete", middleware.RequireConsoleAdmin(), handlers.ConsoleDeleteClient)
	console.POST("/users", middleware.RequireConsoleAdmin(), handlers.ConsoleCreateUser)

	return r
}
