package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/admins"
	"github.com/chidung091/hr-scanning-sub001/internal/criteria"
	"github.com/chidung091/hr-scanning-sub001/internal/evaluations"
	"github.com/chidung091/hr-scanning-sub001/internal/jobs"
	"github.com/chidung091/hr-scanning-sub001/internal/questionnaire"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/config"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/metrics"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/middleware"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
	"github.com/chidung091/hr-scanning-sub001/internal/submissions"
)

// RouterDeps carries the handlers and guard wired by bootstrap.
type RouterDeps struct {
	Config               config.Config
	AdminVerifier        middleware.AdminVerifier
	JobsHandler          *jobs.Handler
	SubmissionsHandler   *submissions.Handler
	QuestionnaireHandler *questionnaire.Handler
	CriteriaHandler      *criteria.Handler
	EvaluationsHandler   *evaluations.Handler
	AdminsHandler        *admins.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.JobsHandler.RegisterPublicRoutes(api)
	deps.SubmissionsHandler.RegisterPublicRoutes(api)
	deps.QuestionnaireHandler.RegisterPublicRoutes(api)

	admin := r.Group("/admin")
	deps.AdminsHandler.RegisterSessionRoutes(admin)

	guard := middleware.AdminGuard(deps.AdminVerifier, deps.Config.AdminLoginPath)
	guarded := api.Group("", guard)
	deps.JobsHandler.RegisterAdminRoutes(guarded)
	deps.SubmissionsHandler.RegisterAdminRoutes(guarded)
	deps.CriteriaHandler.RegisterRoutes(guarded)
	deps.EvaluationsHandler.RegisterAdminRoutes(guarded)
	deps.AdminsHandler.RegisterAdminRoutes(guarded)

	return r
}

// Route classes for rate limiting: uploads and evaluations are the two
// expensive operations, everything else shares the default bucket.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":  {Rate: 20, Burst: 40},
			"UPLOAD":   {Rate: 0.5, Burst: 5},
			"EVALUATE": {Rate: 0.2, Burst: 3},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			path := c.FullPath()
			switch {
			case c.Request.Method == http.MethodPost && path == "/api/v1/submissions":
				return "UPLOAD"
			case c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/evaluate"):
				return "EVALUATE"
			default:
				return "DEFAULT"
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
