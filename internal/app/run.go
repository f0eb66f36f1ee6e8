package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/export"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/service/usage"
	"github.com/Alijeyrad/hospital_records/pkg/constants"
	s3pkg "github.com/Alijeyrad/hospital_records/pkg/s3"
)

// Runtime is the set of services a command body works with.
type Runtime struct {
	fx.In

	Config       *config.Config
	Patients     patient.Service
	Doctors      doctor.Service
	Catalog      catalog.Service
	Usage        usage.Service
	Appointments appointment.Service
	Billing      billing.Service
	Exports      export.Service
	// Archive is nil unless archive.enabled is set.
	Archive *s3pkg.Client
}

// Run builds the application graph, starts it, runs fn inside a span named
// after the command and stops the graph again. Only start and stop failures
// and what fn returns come back as errors.
func Run(ctx context.Context, cfg *config.Config, name string, fn func(context.Context, Runtime) error) error {
	var rt Runtime

	fxApp := fx.New(
		fx.Supply(cfg),
		InfraModule,
		ServiceModule,
		fx.Invoke(func(r Runtime) { rt = r }),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	)
	if err := fxApp.Err(); err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	timeout := time.Duration(cfg.App.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	ctx, span := otel.Tracer(constants.AppName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	runErr := fn(ctx, rt)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	span.End()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil && runErr == nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return runErr
}
