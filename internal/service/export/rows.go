package export

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/pkg/constants"
)

// CSV row shapes. The csv tags are the header cells, in column order.

type billingRow struct {
	BillID      string `csv:"Bill ID"`
	PatientID   int    `csv:"Patient ID"`
	TotalAmount string `csv:"Total Amount"`
	BillingDate string `csv:"Billing Date"`
}

type appointmentRow struct {
	AppointmentID    string `csv:"Appointment ID"`
	PatientID        int    `csv:"Patient ID"`
	DoctorID         string `csv:"Doctor ID"`
	Date             string `csv:"Date"`
	Diagnosis        string `csv:"Diagnosis"`
	ConsultingCharge string `csv:"Consulting Charge"`
}

type patientRow struct {
	PatientID     int    `csv:"Patient ID"`
	Name          string `csv:"Name"`
	Age           int    `csv:"Age"`
	Gender        string `csv:"Gender"`
	AdmissionDate string `csv:"Admission Date"`
	ContactNo     string `csv:"Contact No"`
}

type doctorRow struct {
	DoctorID       string `csv:"Doctor ID"`
	Name           string `csv:"Name"`
	Specialization string `csv:"Specialization"`
	ContactNo      string `csv:"Contact No"`
}

type serviceRow struct {
	ServiceID   string `csv:"Service ID"`
	ServiceName string `csv:"Service Name"`
	Cost        string `csv:"Cost"`
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func billingRows(bills []*repo.Bill) []*billingRow {
	return lo.Map(bills, func(b *repo.Bill, _ int) *billingRow {
		return &billingRow{
			BillID:      b.ID,
			PatientID:   b.PatientID,
			TotalAmount: amount(b.TotalAmount),
			BillingDate: b.BillingDate.Format(constants.DateLayout),
		}
	})
}

func appointmentRows(appts []*repo.Appointment) []*appointmentRow {
	return lo.Map(appts, func(a *repo.Appointment, _ int) *appointmentRow {
		return &appointmentRow{
			AppointmentID:    a.ID,
			PatientID:        a.PatientID,
			DoctorID:         a.DoctorID,
			Date:             a.Date.Format(constants.DateLayout),
			Diagnosis:        a.Diagnosis,
			ConsultingCharge: amount(a.ConsultingCharge),
		}
	})
}

func patientRows(patients []*repo.Patient) []*patientRow {
	return lo.Map(patients, func(p *repo.Patient, _ int) *patientRow {
		return &patientRow{
			PatientID:     p.ID,
			Name:          p.Name,
			Age:           p.Age,
			Gender:        p.Gender,
			AdmissionDate: p.AdmissionDate.Format(constants.DateLayout),
			ContactNo:     p.ContactNo,
		}
	})
}

func doctorRows(doctors []*repo.Doctor) []*doctorRow {
	return lo.Map(doctors, func(d *repo.Doctor, _ int) *doctorRow {
		return &doctorRow{
			DoctorID:       d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
			ContactNo:      d.ContactNo,
		}
	})
}

func serviceRows(services []*repo.Service) []*serviceRow {
	return lo.Map(services, func(s *repo.Service, _ int) *serviceRow {
		return &serviceRow{
			ServiceID:   s.ID,
			ServiceName: s.Name,
			Cost:        amount(s.Cost),
		}
	})
}
