// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/teloworks/telodash/internal/app/resources"
	userstore "github.com/teloworks/telodash/internal/app/store/users"
	"github.com/teloworks/telodash/internal/app/system/authutil"
	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having live
// database connections and fully loaded configuration.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. The context will be cancelled if the process is asked to shut
// down while Startup is running; honor it in any long-running work.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// Note: Indexes are created in EnsureSchema via indexes.EnsureAll().

	// Seed admin user if configured
	if appCfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, deps, appCfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return err
		}
	}

	return nil
}

// ensureAdminUser ensures an admin operator exists with the configured
// email. An existing user is promoted to admin if needed; otherwise a
// new password-auth admin is created with the configured password.
func ensureAdminUser(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	name := appCfg.SeedAdminName
	if name == "" {
		name = "Admin"
	}

	existing, err := users.GetByEmail(ctx, appCfg.SeedAdminEmail)
	if err == nil {
		if existing.Role == models.RoleAdmin {
			logger.Debug("admin user already configured", zap.String("email", existing.Email))
			return nil
		}

		if err := users.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin",
			zap.String("email", existing.Email),
			zap.String("user_id", existing.ID.Hex()),
			zap.String("previous_role", existing.Role))
		return nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	created, err := users.Create(ctx, models.User{
		FullName:     name,
		Email:        appCfg.SeedAdminEmail,
		PasswordHash: &hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}

	logger.Info("created admin user",
		zap.String("email", created.Email),
		zap.String("user_id", created.ID.Hex()))
	return nil
}
