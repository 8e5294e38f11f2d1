// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/enrollment"
	apidocsfeature "github.com/dalemusser/coursehub/internal/app/features/apidocs"
	coursesfeature "github.com/dalemusser/coursehub/internal/app/features/courses"
	healthfeature "github.com/dalemusser/coursehub/internal/app/features/health"
	usersfeature "github.com/dalemusser/coursehub/internal/app/features/users"
	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/limits"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. The API is JSON only: users and courses
// under /api, the OpenAPI document under /api-docs, and /health for load
// balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// API document
	docsHandler, err := apidocsfeature.NewHandler(appCfg.PublicBaseURL, logger)
	if err != nil {
		logger.Error("api document build failed", zap.Error(err))
		return nil, err
	}
	r.Mount("/api-docs", apidocsfeature.Routes(docsHandler))

	// Bulk endpoints share one per-IP limiter. Its sweeper runs for the
	// life of the process.
	var bulkLimiter *ratelimit.Limiter
	if appCfg.BulkRateLimit > 0 {
		bulkLimiter = ratelimit.New(appCfg.BulkRateLimit, limits.BulkWindow)
		go bulkLimiter.Sweep(context.Background(), 2*limits.BulkWindow)
	}

	// Users and their enrollments
	users := userstore.New(db)
	mgr := enrollment.New(users, coursestore.New(db), logger)
	usersHandler := usersfeature.NewHandler(mgr, users, appCfg.BulkMaxItems, logger)
	r.Mount("/api/usuarios", usersfeature.Routes(usersHandler, bulkLimiter))

	// Course catalog
	coursesHandler := coursesfeature.NewHandler(db, appCfg.BulkMaxItems, logger)
	r.Mount("/api/cursos", coursesfeature.Routes(coursesHandler, bulkLimiter))

	return r, nil
}
