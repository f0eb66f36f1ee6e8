package schema

import (
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the migrator and the query builders.
const (
	PatientTable              = "patients"
	PatientFieldID            = "patient_id"
	PatientFieldName          = "name"
	PatientFieldAge           = "age"
	PatientFieldGender        = "gender"
	PatientFieldAdmissionDate = "admission_date"
	PatientFieldContactNo     = "contact_no"

	DoctorTable               = "doctors"
	DoctorFieldID             = "doctor_id"
	DoctorFieldName           = "name"
	DoctorFieldSpecialization = "specialization"
	DoctorFieldContactNo      = "contact_no"

	ServiceTable       = "services"
	ServiceFieldID     = "service_id"
	ServiceFieldName   = "service_name"
	ServiceFieldCost   = "cost"
	ServiceUsageTable  = "temp_service_usage"
	UsageFieldPatient  = "patient_id"
	UsageFieldService  = "service_id"
	UsageFieldName     = "service_name"
	UsageFieldCost     = "cost"
	BilledTable        = "billed_services"
	BilledFieldBill    = "bill_id"
	BilledFieldPatient = "patient_id"
	BilledFieldService = "service_id"
	BilledFieldName    = "service_name"
	BilledFieldCost    = "cost"

	AppointmentTable                 = "appointments"
	AppointmentFieldID               = "appt_id"
	AppointmentFieldPatientID        = "patient_id"
	AppointmentFieldDoctorID         = "doctor_id"
	AppointmentFieldDate             = "date"
	AppointmentFieldDiagnosis        = "diagnosis"
	AppointmentFieldConsultingCharge = "consulting_charge"

	BillTable            = "billing"
	BillFieldID          = "bill_id"
	BillFieldPatientID   = "patient_id"
	BillFieldTotalAmount = "total_amount"
	BillFieldBillingDate = "billing_date"
)

var (
	dateType  = map[string]string{dialect.Postgres: "date", dialect.MySQL: "date"}
	moneyType = map[string]string{dialect.Postgres: "numeric(10,2)", dialect.MySQL: "decimal(10,2)"}
)

var (
	// PatientsColumns holds the columns for the "patients" table.
	PatientsColumns = []*schema.Column{
		{Name: PatientFieldID, Type: field.TypeInt},
		{Name: PatientFieldName, Type: field.TypeString, Size: 100},
		{Name: PatientFieldAge, Type: field.TypeInt},
		{Name: PatientFieldGender, Type: field.TypeString, Size: 10},
		{Name: PatientFieldAdmissionDate, Type: field.TypeTime, SchemaType: dateType},
		{Name: PatientFieldContactNo, Type: field.TypeString, Size: 15},
	}
	// PatientsTable holds the schema information for the "patients" table.
	PatientsTable = &schema.Table{
		Name:       PatientTable,
		Columns:    PatientsColumns,
		PrimaryKey: []*schema.Column{PatientsColumns[0]},
	}

	// DoctorsColumns holds the columns for the "doctors" table.
	DoctorsColumns = []*schema.Column{
		{Name: DoctorFieldID, Type: field.TypeString, Size: 10},
		{Name: DoctorFieldName, Type: field.TypeString, Size: 100},
		{Name: DoctorFieldSpecialization, Type: field.TypeString, Size: 100},
		{Name: DoctorFieldContactNo, Type: field.TypeString, Size: 15},
	}
	// DoctorsTable holds the schema information for the "doctors" table.
	DoctorsTable = &schema.Table{
		Name:       DoctorTable,
		Columns:    DoctorsColumns,
		PrimaryKey: []*schema.Column{DoctorsColumns[0]},
	}

	// ServicesColumns holds the columns for the "services" table.
	ServicesColumns = []*schema.Column{
		{Name: ServiceFieldID, Type: field.TypeString, Size: 10},
		{Name: ServiceFieldName, Type: field.TypeString, Size: 100},
		{Name: ServiceFieldCost, Type: field.TypeFloat64, SchemaType: moneyType},
	}
	// ServicesTable holds the schema information for the "services" table.
	ServicesTable = &schema.Table{
		Name:       ServiceTable,
		Columns:    ServicesColumns,
		PrimaryKey: []*schema.Column{ServicesColumns[0]},
	}

	// UsageColumns holds the columns for the "temp_service_usage" table.
	UsageColumns = []*schema.Column{
		{Name: UsageFieldPatient, Type: field.TypeInt},
		{Name: UsageFieldService, Type: field.TypeString, Size: 10},
		{Name: UsageFieldName, Type: field.TypeString, Size: 100},
		{Name: UsageFieldCost, Type: field.TypeFloat64, SchemaType: moneyType},
	}
	// ServiceUsagesTable holds the schema information for the "temp_service_usage" table.
	// The composite key rejects staging the same service twice for one patient.
	ServiceUsagesTable = &schema.Table{
		Name:       ServiceUsageTable,
		Columns:    UsageColumns,
		PrimaryKey: []*schema.Column{UsageColumns[0], UsageColumns[1]},
	}

	// AppointmentsColumns holds the columns for the "appointments" table.
	AppointmentsColumns = []*schema.Column{
		{Name: AppointmentFieldID, Type: field.TypeString, Size: 10},
		{Name: AppointmentFieldPatientID, Type: field.TypeInt},
		{Name: AppointmentFieldDoctorID, Type: field.TypeString, Size: 10},
		{Name: AppointmentFieldDate, Type: field.TypeTime, SchemaType: dateType},
		{Name: AppointmentFieldDiagnosis, Type: field.TypeString, Size: 255},
		{Name: AppointmentFieldConsultingCharge, Type: field.TypeFloat64, SchemaType: moneyType, Default: 0},
	}
	// AppointmentsTable holds the schema information for the "appointments" table.
	AppointmentsTable = &schema.Table{
		Name:       AppointmentTable,
		Columns:    AppointmentsColumns,
		PrimaryKey: []*schema.Column{AppointmentsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "appointment_patient_id_date",
				Unique:  false,
				Columns: []*schema.Column{AppointmentsColumns[1], AppointmentsColumns[3]},
			},
		},
	}

	// BillingColumns holds the columns for the "billing" table.
	BillingColumns = []*schema.Column{
		{Name: BillFieldID, Type: field.TypeString, Size: 10},
		{Name: BillFieldPatientID, Type: field.TypeInt},
		{Name: BillFieldTotalAmount, Type: field.TypeFloat64, SchemaType: moneyType},
		{Name: BillFieldBillingDate, Type: field.TypeTime, SchemaType: dateType},
	}
	// BillingTable holds the schema information for the "billing" table.
	BillingTable = &schema.Table{
		Name:       BillTable,
		Columns:    BillingColumns,
		PrimaryKey: []*schema.Column{BillingColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "billing_patient_id",
				Unique:  false,
				Columns: []*schema.Column{BillingColumns[1]},
			},
		},
	}

	// BilledServicesColumns holds the columns for the "billed_services" table.
	BilledServicesColumns = []*schema.Column{
		{Name: BilledFieldBill, Type: field.TypeString, Size: 10},
		{Name: BilledFieldPatient, Type: field.TypeInt},
		{Name: BilledFieldService, Type: field.TypeString, Size: 10},
		{Name: BilledFieldName, Type: field.TypeString, Size: 100},
		{Name: BilledFieldCost, Type: field.TypeFloat64, SchemaType: moneyType},
	}
	// BilledServicesTable holds the schema information for the "billed_services" table.
	BilledServicesTable = &schema.Table{
		Name:       BilledTable,
		Columns:    BilledServicesColumns,
		PrimaryKey: []*schema.Column{BilledServicesColumns[0], BilledServicesColumns[2]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		PatientsTable,
		DoctorsTable,
		ServicesTable,
		ServiceUsagesTable,
		AppointmentsTable,
		BillingTable,
		BilledServicesTable,
	}
)
