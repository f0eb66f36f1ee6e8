package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/export"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/service/usage"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/email"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvidePatientService,
		ProvideDoctorService,
		ProvideCatalogService,
		ProvideUsageService,
		ProvideAppointmentService,
		ProvideBillingService,
		ProvideExportService,
	),
)

func ProvidePatientService(db *repo.Client, v *validate.Validator) patient.Service {
	return patient.New(db, v)
}

func ProvideDoctorService(db *repo.Client, v *validate.Validator) doctor.Service {
	return doctor.New(db, v)
}

func ProvideCatalogService(db *repo.Client) catalog.Service {
	return catalog.New(db)
}

func ProvideUsageService(db *repo.Client) usage.Service {
	return usage.New(db)
}

func ProvideAppointmentService(db *repo.Client) appointment.Service {
	return appointment.New(db)
}

func ProvideBillingService(db *repo.Client, staged usage.Service, mailer *email.Client, cfg *config.Config) billing.Service {
	return billing.New(db, staged, cfg.Invoice, billing.WithMailer(mailer))
}

func ProvideExportService(
	patients patient.Service,
	doctors doctor.Service,
	services catalog.Service,
	appts appointment.Service,
	bills billing.Service,
	cfg *config.Config,
) export.Service {
	return export.New(export.Sources{
		Patients:     patients,
		Doctors:      doctors,
		Services:     services,
		Appointments: appts,
		Bills:        bills,
	}, cfg.Export.Directory)
}
