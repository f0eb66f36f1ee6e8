package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/database"
	"github.com/Alijeyrad/hospital_records/pkg/email"
	"github.com/Alijeyrad/hospital_records/pkg/observability"
	s3pkg "github.com/Alijeyrad/hospital_records/pkg/s3"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideEntClient),
	fx.Provide(ProvideValidator),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideArchive),
	fx.Provide(ProvideOTel),
	// Nothing depends on the provider; invoking it installs the global tracer.
	fx.Invoke(func(*observability.Provider) {}),
)

func ProvideEntClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	client, err := database.NewEntClient(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Database.Migrations.AutoMigrate {
				return nil
			}
			slog.Debug("running auto migration")
			return database.MigrateEnt(ctx, client)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return client.Close()
		},
	})
	return client, nil
}

func ProvideValidator(cfg *config.Config) *validate.Validator {
	return validate.New(cfg.Validation.PhoneRegion)
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

// ProvideArchive returns nil when archiving is disabled.
func ProvideArchive(cfg *config.Config) (*s3pkg.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}
	return s3pkg.New(cfg.Archive)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized", "endpoint", cfg.Observability.Tracing.OTLPEndpoint)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
