package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"conformo/internal/config"
	"conformo/internal/database"
	"conformo/internal/engine"
	"conformo/internal/handlers"
	"conformo/internal/middleware"
	"conformo/internal/models"
	"conformo/internal/store"
)

func NewRouter(cfg *config.Config, log *zap.SugaredLogger) *gin.Engine {
	r := gin.Default()

	st := store.New(database.DB)
	gen := engine.NewGenerator(st, log)
	linkage := engine.NewLinkage(st, st, log)
	calc := engine.NewCalculator(st, log)

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("conformo_session", sessionStore))

	r.Use(middleware.InjectAuthContext(demoOrgID(cfg)))

	// AUTH
	r.POST("/api/register", handlers.Register)
	r.POST("/api/login", handlers.Login)
	r.POST("/api/logout", handlers.Logout)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	editors := []models.UserRole{models.RoleAdmin, models.RoleManager}
	auditors := []models.UserRole{models.RoleAdmin, models.RoleAuditor}

	// ORGANIZATION
	api.GET("/organization", handlers.GetOrganization)
	api.POST("/organizations",
		middleware.RequireRole(models.RoleAdmin),
		handlers.CreateOrganization,
	)
	api.PUT("/organization",
		middleware.RequireRole(editors...),
		handlers.UpdateOrganization,
	)

	// ASSETS
	api.GET("/assets", handlers.ListAssets)
	api.GET("/assets/:id", handlers.GetAsset)
	api.POST("/assets",
		middleware.RequireRole(editors...),
		handlers.CreateAsset,
	)
	api.PUT("/assets/:id",
		middleware.RequireRole(editors...),
		handlers.UpdateAsset,
	)
	api.POST("/assets/:id/generate-risks",
		middleware.RequireRole(editors...),
		handlers.GenerateAssetRisks(gen),
	)

	// RISKS
	api.GET("/risks", handlers.ListRisks)
	api.POST("/risks",
		middleware.RequireRole(editors...),
		handlers.CreateRisk,
	)
	api.PUT("/risks/:id/treatment",
		middleware.RequireRole(editors...),
		handlers.UpdateRiskTreatment,
	)
	api.GET("/risk-templates", handlers.ListRiskTemplates)
	api.POST("/risk-templates/:id/instantiate",
		middleware.RequireRole(editors...),
		handlers.InstantiateRiskTemplate,
	)

	// CONTROLS / SOA
	api.GET("/controls", handlers.ListControls)
	api.PUT("/controls/:control_id",
		middleware.RequireRole(editors...),
		handlers.UpdateControlStatus,
	)
	api.GET("/soa", handlers.ListSoA)
	api.PUT("/soa/:control_id",
		middleware.RequireRole(editors...),
		handlers.UpdateSoAItem,
	)
	api.POST("/soa/export",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleAuditor),
		handlers.ExportSoA,
	)

	// AUDITS
	api.GET("/audits", handlers.ListAudits)
	api.GET("/audits/:id", handlers.GetAudit)
	api.POST("/audits",
		middleware.RequireRole(auditors...),
		handlers.CreateAudit,
	)
	api.PUT("/audits/:id/checklist",
		middleware.RequireRole(auditors...),
		handlers.SetChecklist,
	)
	api.POST("/audits/:id/apply",
		middleware.RequireRole(auditors...),
		handlers.ApplyAuditResults(linkage),
	)
	api.GET("/audits/suggestions", handlers.GetAuditSuggestions(linkage))

	// NON-CONFORMITIES
	api.GET("/nonconformities", handlers.ListNonConformities)
	api.PUT("/nonconformities/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleAuditor),
		handlers.UpdateNonConformity,
	)

	// POLICIES
	api.GET("/policies", handlers.ListPolicies)
	api.POST("/policies",
		middleware.RequireRole(editors...),
		handlers.CreatePolicy,
	)
	api.PUT("/policies/:id",
		middleware.RequireRole(editors...),
		handlers.UpdatePolicy,
	)

	// DASHBOARD / ACTIVITY
	api.GET("/dashboard", handlers.Dashboard(calc))
	api.GET("/activity",
		middleware.RequireRole(editors...),
		handlers.ListActivity,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

// demoOrgID resolves the demo tenant once at startup; 0 disables the
// anonymous fallback.
func demoOrgID(cfg *config.Config) uint {
	if !cfg.DemoMode {
		return 0
	}
	var org models.Organization
	if err := database.DB.Where("name = ?", cfg.DemoOrgName).First(&org).Error; err != nil {
		return 0
	}
	return org.ID
}
