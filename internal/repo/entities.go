package repo

import "time"

// Person holds the fields patients and doctors have in common.
type Person struct {
	Name      string
	ContactNo string
}

type Patient struct {
	ID int
	Person
	Age           int
	Gender        string
	AdmissionDate time.Time
}

type Doctor struct {
	ID string
	Person
	Specialization string
}

// Service is a catalog entry.
type Service struct {
	ID   string
	Name string
	Cost float64
}

// ServiceUsage is a staged, not yet billed, service line for a patient.
type ServiceUsage struct {
	PatientID   int
	ServiceID   string
	ServiceName string
	Cost        float64
}

type Appointment struct {
	ID               string
	PatientID        int
	DoctorID         string
	Date             time.Time
	Diagnosis        string
	ConsultingCharge float64
}

type Bill struct {
	ID          string
	PatientID   int
	TotalAmount float64
	BillingDate time.Time
}

// BilledService is a service line frozen into a bill at creation.
type BilledService struct {
	BillID      string
	PatientID   int
	ServiceID   string
	ServiceName string
	Cost        float64
}

// DateOnly truncates t to midnight UTC of its calendar date. Drivers return
// DATE columns with differing locations; comparing normalized values keeps
// day arithmetic exact.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
