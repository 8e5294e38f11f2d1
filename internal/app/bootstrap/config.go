// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/limits"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for coursehub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, bcrypt_cost, etc.
//   - Environment variables: COURSEHUB_MONGO_URI, COURSEHUB_BCRYPT_COST, etc.
//   - Command-line flags: --mongo_uri, --bcrypt_cost, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coursehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins ('*' for any)"},

	{Name: "bcrypt_cost", Default: 12, Desc: "bcrypt cost for user passwords (4-31)"},
	{Name: "bulk_max_items", Default: 500, Desc: "Maximum items accepted by the /coleccion endpoints"},
	{Name: "bulk_rate_limit", Default: limits.BulkRequestsPerWindow, Desc: "Requests per minute per client IP on /coleccion endpoints (0 disables)"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for listings"},
	{Name: "timeout_batch", Default: "60s", Desc: "Timeout for bulk creation"},

	// Base URL advertised in the API document
	{Name: "public_base_url", Default: "http://localhost:8080", Desc: "Public base URL of this service"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, COURSEHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		CORSAllowedOrigins: splitOrigins(appValues.String("cors_allowed_origins")),

		BcryptCost:    appValues.Int("bcrypt_cost"),
		BulkMaxItems:  appValues.Int("bulk_max_items"),
		BulkRateLimit: appValues.Int("bulk_rate_limit"),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutBatch:  appValues.Duration("timeout_batch", timeouts.DefaultBatch),

		PublicBaseURL: strings.TrimRight(appValues.String("public_base_url"), "/"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked here to catch configuration errors
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.BcryptCost < bcrypt.MinCost || appCfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, appCfg.BcryptCost)
	}
	if appCfg.BulkRateLimit < 0 {
		return fmt.Errorf("bulk_rate_limit must not be negative, got %d", appCfg.BulkRateLimit)
	}
	if appCfg.BulkMaxItems <= 0 {
		return fmt.Errorf("bulk_max_items must be positive, got %d", appCfg.BulkMaxItems)
	}
	for name, d := range map[string]time.Duration{
		"timeout_short":  appCfg.TimeoutShort,
		"timeout_medium": appCfg.TimeoutMedium,
		"timeout_batch":  appCfg.TimeoutBatch,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if len(appCfg.CORSAllowedOrigins) == 0 {
		logger.Warn("no CORS origins configured; browsers on other origins will be refused")
	}
	return nil
}

// splitOrigins parses a comma-separated origin list, dropping blanks.
func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
