package api

import (
	"github.com/gin-gonic/gin"

	"github.com/marcus/scenevoice/internal/api/handler"
	"github.com/marcus/scenevoice/internal/api/middleware"
	"github.com/marcus/scenevoice/internal/logger"
)

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - describeHandler: describe endpoints handler.
//   - auditHandler: audit endpoint handler; nil when auditing is disabled.
//   - corsCfg: allowed origins configuration.
//   - log: base logger for request-scoped logging.
//   - mode: gin mode (debug, release, test).
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(
	describeHandler *handler.DescribeHandler,
	auditHandler *handler.AuditHandler,
	corsCfg middleware.CORSConfig,
	log *logger.Logger,
	mode string,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(corsCfg))

	catalogHandler := handler.NewCatalogHandler()

	r.GET("/health", handler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/describe/text", describeHandler.Text)
		v1.POST("/describe/audio", describeHandler.Audio)

		v1.GET("/languages", catalogHandler.Languages)
		v1.GET("/voices", catalogHandler.Voices)

		if auditHandler != nil {
			v1.GET("/audit/recent", auditHandler.Recent)
		}
	}

	return r
}
