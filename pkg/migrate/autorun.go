package migrate

import (
	"context"
	"fmt"

	"github.com/steno/caribbean-tees-pod/pkg/config"
	"github.com/steno/caribbean-tees-pod/pkg/db"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

// MaybeRunDev applies pending migrations when auto-migrate is enabled.
// Production deploys run cmd/migrate explicitly instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.DB.AutoMigrate {
		return nil
	}
	if cfg.DB.UseSQLite {
		// SQLite schemas are created through gorm in dev; goose targets postgres.
		return client.DB().WithContext(ctx).AutoMigrate(allModels()...)
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("sql handle for migrations: %w", err)
	}
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return err
	}
	if logg != nil {
		logg.Info(ctx, "dev migrations applied")
	}
	return nil
}
