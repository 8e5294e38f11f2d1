// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/coursehub/internal/app/system/authutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies process-wide settings after DB connections and schema
// setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Batch:  appCfg.TimeoutBatch,
	})
	authutil.Configure(appCfg.BcryptCost)

	cur := timeouts.Current()
	logger.Info("startup settings",
		zap.Duration("timeout_short", cur.Short),
		zap.Duration("timeout_medium", cur.Medium),
		zap.Duration("timeout_batch", cur.Batch),
		zap.Int("bcrypt_cost", authutil.Cost()),
		zap.Int("bulk_max_items", appCfg.BulkMaxItems))
	return nil
}
