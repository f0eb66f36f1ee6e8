// Package cli holds the operator-facing actions shared by the command tree
// and the interactive menu. Every action prints its outcome; none of them
// fails the process.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Alijeyrad/hospital_records/internal/app"
	"github.com/Alijeyrad/hospital_records/internal/console"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/export"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/constants"
)

type Actions struct {
	rt  app.Runtime
	out *console.Printer
}

func NewActions(rt app.Runtime, out *console.Printer) *Actions {
	return &Actions{rt: rt, out: out}
}

// ---------------------------------------------------------------------------
// Patients
// ---------------------------------------------------------------------------

var patientHeader = []string{"Patient_ID", "Name", "Age", "Gender", "Admission Date", "Contact No"}

func (a *Actions) NextPatientID(ctx context.Context) (int, bool) {
	id, err := a.rt.Patients.NextID(ctx)
	if err != nil {
		a.out.Report(err)
		return 0, false
	}
	a.out.Printf("Auto-generated Patient ID: %d\n", id)
	return id, true
}

func (a *Actions) AddPatient(ctx context.Context, id int, in patient.Input) {
	if _, err := a.rt.Patients.Add(ctx, id, in); err != nil {
		a.out.Report(err)
		a.out.Println("Patient was not added.")
		return
	}
	a.out.Println("Patient added successfully.")
}

func (a *Actions) UpdatePatient(ctx context.Context, rawID string, in patient.Input) {
	id, ok := a.patientID(rawID)
	if !ok {
		return
	}
	if _, err := a.rt.Patients.Update(ctx, id, in); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Patient updated successfully.")
}

func (a *Actions) DeletePatient(ctx context.Context, rawID string) {
	id, ok := a.patientID(rawID)
	if !ok {
		return
	}
	if err := a.rt.Patients.Delete(ctx, id); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Patient deleted successfully.")
}

func (a *Actions) ViewPatients(ctx context.Context) {
	patients, err := a.rt.Patients.List(ctx)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Table(patientHeader, patientRows(patients))
}

func (a *Actions) SearchPatients(ctx context.Context, name string) {
	patients, err := a.rt.Patients.SearchByName(ctx, name)
	if err != nil {
		a.out.Report(err)
		return
	}
	if len(patients) == 0 {
		a.out.Println("No patients found matching that name.")
		return
	}
	a.out.Table(patientHeader, patientRows(patients))
}

func (a *Actions) DaysAdmitted(ctx context.Context, rawID string) {
	id, ok := a.patientID(rawID)
	if !ok {
		return
	}
	days, err := a.rt.Patients.DaysAdmitted(ctx, id)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Patient %d has been admitted for %d days.\n", id, days)
}

// ---------------------------------------------------------------------------
// Doctors
// ---------------------------------------------------------------------------

var doctorHeader = []string{"Doctor_ID", "Name", "Specialization", "Contact No"}

func (a *Actions) NextDoctorID(ctx context.Context) (string, bool) {
	id, err := a.rt.Doctors.NextID(ctx)
	if err != nil {
		a.out.Report(err)
		return "", false
	}
	a.out.Printf("Auto-generated Doctor ID: %s\n", id)
	return id, true
}

func (a *Actions) AddDoctor(ctx context.Context, id string, in doctor.Input) {
	if _, err := a.rt.Doctors.Add(ctx, id, in); err != nil {
		a.out.Report(err)
		a.out.Println("Doctor was not added.")
		return
	}
	a.out.Println("Doctor added successfully.")
}

func (a *Actions) UpdateDoctor(ctx context.Context, id string, in doctor.Input) {
	if _, err := a.rt.Doctors.Update(ctx, id, in); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Doctor updated successfully.")
}

func (a *Actions) DeleteDoctor(ctx context.Context, id string) {
	if err := a.rt.Doctors.Delete(ctx, id); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Doctor deleted successfully.")
}

func (a *Actions) ViewDoctors(ctx context.Context) {
	doctors, err := a.rt.Doctors.List(ctx)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Table(doctorHeader, doctorRows(doctors))
}

func (a *Actions) SearchDoctors(ctx context.Context, name string) {
	doctors, err := a.rt.Doctors.SearchByName(ctx, name)
	if err != nil {
		a.out.Report(err)
		return
	}
	if len(doctors) == 0 {
		a.out.Println("No doctors found matching that name.")
		return
	}
	a.out.Table(doctorHeader, doctorRows(doctors))
}

// ---------------------------------------------------------------------------
// Services and staging
// ---------------------------------------------------------------------------

func (a *Actions) NextServiceID(ctx context.Context) (string, bool) {
	id, err := a.rt.Catalog.NextID(ctx)
	if err != nil {
		a.out.Report(err)
		return "", false
	}
	a.out.Printf("Auto-generated Service ID: %s\n", id)
	return id, true
}

func (a *Actions) AddService(ctx context.Context, id string, in catalog.Input) {
	if _, err := a.rt.Catalog.Add(ctx, id, in); err != nil {
		a.out.Report(err)
		a.out.Println("Service was not added.")
		return
	}
	a.out.Println("Service added successfully.")
}

func (a *Actions) UpdateService(ctx context.Context, id string, in catalog.Input) {
	if _, err := a.rt.Catalog.Update(ctx, id, in); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Service updated successfully.")
}

func (a *Actions) DeleteService(ctx context.Context, id string) {
	if err := a.rt.Catalog.Delete(ctx, id); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Service deleted successfully.")
}

func (a *Actions) ViewServices(ctx context.Context) {
	services, err := a.rt.Catalog.List(ctx)
	if err != nil {
		a.out.Report(err)
		return
	}
	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{s.ID, s.Name, money(s.Cost)})
	}
	a.out.Table([]string{"Service_ID", "Service Name", "Cost"}, rows)
}

func (a *Actions) StageService(ctx context.Context, rawPatientID, serviceID string) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return
	}
	svc, err := a.rt.Catalog.Get(ctx, serviceID)
	if err != nil {
		a.out.Report(err)
		return
	}
	if _, err := a.rt.Usage.Add(ctx, pid, svc); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Service %s added for patient %d.\n", svc.ID, pid)
}

func (a *Actions) ViewStaged(ctx context.Context, rawPatientID string) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return
	}
	staged, err := a.rt.Usage.List(ctx, pid)
	if err != nil {
		a.out.Report(err)
		return
	}
	if len(staged) == 0 {
		a.out.Println("No services recorded for this patient.")
		return
	}
	a.out.Printf("Services used by %d:\n", pid)
	for _, u := range staged {
		a.out.Printf("- %s (ID: %s, Cost: %s)\n", u.ServiceName, u.ServiceID, money(u.Cost))
	}
}

func (a *Actions) ClearStaged(ctx context.Context, rawPatientID string) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return
	}
	n, err := a.rt.Usage.Clear(ctx, pid)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Cleared %d staged services for patient %d.\n", n, pid)
}

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

var appointmentHeader = []string{"Appointment_ID", "Patient_ID", "Doctor_ID", "Date", "Diagnosis", "Consulting Charge"}

func (a *Actions) NextAppointmentID(ctx context.Context) (string, bool) {
	id, err := a.rt.Appointments.NextID(ctx)
	if err != nil {
		a.out.Report(err)
		return "", false
	}
	a.out.Printf("Auto-generated Appointment ID: %s\n", id)
	return id, true
}

func (a *Actions) AddAppointment(ctx context.Context, id string, in appointment.Input) {
	if _, err := a.rt.Appointments.Add(ctx, id, in); err != nil {
		a.out.Report(err)
		a.out.Println("Appointment was not added.")
		return
	}
	a.out.Println("Appointment added successfully.")
}

func (a *Actions) UpdateAppointment(ctx context.Context, id string, in appointment.Input) {
	if _, err := a.rt.Appointments.Update(ctx, id, in); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Appointment updated successfully.")
}

func (a *Actions) DeleteAppointment(ctx context.Context, id string) {
	if err := a.rt.Appointments.Delete(ctx, id); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Appointment deleted successfully.")
}

func (a *Actions) ViewAppointments(ctx context.Context) {
	appts, err := a.rt.Appointments.List(ctx)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Table(appointmentHeader, appointmentRows(appts))
}

// FilterAppointments accepts loosely formatted dates such as "2024-01-05",
// "Jan 5, 2024" or "01/05/2024".
func (a *Actions) FilterAppointments(ctx context.Context, rawFrom, rawTo string) {
	from, err := dateparse.ParseIn(rawFrom, time.UTC)
	if err != nil {
		a.out.Printf("Invalid start date %q.\n", rawFrom)
		return
	}
	to, err := dateparse.ParseIn(rawTo, time.UTC)
	if err != nil {
		a.out.Printf("Invalid end date %q.\n", rawTo)
		return
	}

	appts, err := a.rt.Appointments.FilterByDate(ctx, from, to)
	if err != nil {
		a.out.Report(err)
		return
	}
	if len(appts) == 0 {
		a.out.Println("No appointments found in that date range.")
		return
	}
	a.out.Table(appointmentHeader, appointmentRows(appts))
}

func (a *Actions) DaysBetween(ctx context.Context, rawPatientID string) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return
	}
	gaps, err := a.rt.Appointments.DaysBetween(ctx, pid)
	if err != nil {
		a.out.Report(err)
		return
	}
	if len(gaps) == 0 {
		a.out.Println("Not enough appointments to calculate days between.")
		return
	}
	for i, days := range gaps {
		a.out.Printf("Days between appointment %d and %d: %d\n", i+1, i+2, days)
	}
}

// ---------------------------------------------------------------------------
// Billing
// ---------------------------------------------------------------------------

// InvoiceOptions are the extra deliveries of a generated invoice.
type InvoiceOptions struct {
	MailTo  string
	Archive bool
}

func (a *Actions) NextBillID(ctx context.Context) (string, bool) {
	id, err := a.rt.Billing.NextID(ctx)
	if err != nil {
		a.out.Report(err)
		return "", false
	}
	a.out.Printf("Auto-generated Bill ID: %s\n", id)
	return id, true
}

func (a *Actions) AddBill(ctx context.Context, in billing.Input) {
	res, err := a.rt.Billing.Add(ctx, in)
	if err != nil {
		a.out.Report(err)
		a.out.Println("Bill was not added. Invoice not generated.")
		return
	}

	for _, id := range res.Skipped {
		a.out.Warn("duplicate service entry for bill %s and service %s. Skipped.", res.Bill.ID, id)
	}
	a.out.Printf("Bill added successfully. Total amount: %s\n", money(res.Bill.TotalAmount))
	a.out.Println("Billed services recorded.")
	if res.ClearErr != nil {
		a.out.Printf("Error clearing temp service usage: %v\n", res.ClearErr)
	}
	if res.InvoiceErr != nil {
		a.out.Report(res.InvoiceErr)
		return
	}
	a.out.Printf("Invoice generated and saved as %s\n", res.InvoicePath)
}

func (a *Actions) UpdateBill(ctx context.Context, in billing.Input) {
	bill, err := a.rt.Billing.Update(ctx, in)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Bill updated successfully. Total amount: %s\n", money(bill.TotalAmount))
}

func (a *Actions) DeleteBill(ctx context.Context, id string) {
	if err := a.rt.Billing.Delete(ctx, id); err != nil {
		a.out.Report(err)
		return
	}
	a.out.Println("Bill deleted successfully.")
}

func (a *Actions) ViewBills(ctx context.Context) {
	bills, err := a.rt.Billing.List(ctx)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Table([]string{"ID", "Patient ID", "Total Amount", "Billing Date"}, billRows(bills))
}

func (a *Actions) ComputeTotal(ctx context.Context, rawPatientID string) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return
	}
	t, err := a.rt.Billing.ComputeTotal(ctx, pid)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Service Total: %s\n", money(t.Services))
	a.out.Printf("Consulting Total: %s\n", money(t.Consulting))
	a.out.Printf("Total Billing: %s\n", money(t.Total))
	a.out.Printf("Total bill for patient %d: %s\n", pid, money(t.Total))
}

func (a *Actions) InvoiceForBill(ctx context.Context, billID string, opts InvoiceOptions) {
	path, err := a.rt.Billing.WriteInvoice(ctx, billID)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Invoice generated and saved as %s\n", path)

	if opts.MailTo != "" {
		if err := a.rt.Billing.SendInvoice(ctx, billID, opts.MailTo); err != nil {
			a.out.Report(err)
		} else {
			a.out.Printf("Invoice e-mailed to %s\n", opts.MailTo)
		}
	}
	if opts.Archive {
		a.archive(ctx, "invoices", path)
	}
}

// PatientBills returns the bills of a patient for invoice selection. It
// prints the reason and returns false when there is nothing to choose from.
func (a *Actions) PatientBills(ctx context.Context, rawPatientID string) ([]*repo.Bill, bool) {
	pid, ok := a.patientID(rawPatientID)
	if !ok {
		return nil, false
	}
	bills, err := a.rt.Billing.ListForPatient(ctx, pid)
	if err != nil {
		a.out.Report(err)
		return nil, false
	}
	return bills, true
}

// ListBillChoices prints a numbered list of bills, starting at 1.
func (a *Actions) ListBillChoices(bills []*repo.Bill) {
	a.out.Println("Multiple bills found for this patient:")
	for i, b := range bills {
		a.out.Printf("%d. Bill ID: %s, Date: %s\n", i+1, b.ID, b.BillingDate.Format(constants.DateLayout))
	}
}

// InvoiceForPatient generates the invoice of the patient's only bill, or of
// the pick-th bill (1-based) when there are several.
func (a *Actions) InvoiceForPatient(ctx context.Context, rawPatientID string, pick int, opts InvoiceOptions) {
	bills, ok := a.PatientBills(ctx, rawPatientID)
	if !ok {
		return
	}
	switch {
	case len(bills) == 1:
		a.InvoiceForBill(ctx, bills[0].ID, opts)
	case pick == 0:
		a.ListBillChoices(bills)
		a.out.Println("Select one with --pick.")
	case pick < 1 || pick > len(bills):
		a.out.Println("Invalid selection.")
	default:
		a.InvoiceForBill(ctx, bills[pick-1].ID, opts)
	}
}

// ---------------------------------------------------------------------------
// Exports
// ---------------------------------------------------------------------------

var exportLabels = map[export.Kind]string{
	export.Billing:      "Billing summary",
	export.Appointments: "Appointment summary",
	export.Patients:     "Patients",
	export.Doctors:      "Doctors",
	export.Services:     "Services",
}

func (a *Actions) Export(ctx context.Context, rawKind, path, rawFormat string, archive bool) {
	kind, err := export.ParseKind(rawKind)
	if err != nil {
		a.out.Report(err)
		return
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		a.out.Report(err)
		return
	}

	res, err := a.rt.Exports.Export(ctx, export.Request{Kind: kind, Path: path, Format: format})
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("%s exported to %s\n", exportLabels[kind], res.Path)

	if archive {
		a.archive(ctx, "exports", res.Path)
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (a *Actions) archive(ctx context.Context, kind, path string) {
	if a.rt.Archive == nil {
		a.out.Warn("archive is disabled; set archive.enabled to upload files.")
		return
	}
	key, err := a.rt.Archive.UploadFile(ctx, kind, path)
	if err != nil {
		a.out.Report(err)
		return
	}
	a.out.Printf("Archived as %s\n", key)
	if url, err := a.rt.Archive.PresignDownload(ctx, key); err == nil {
		a.out.Printf("Download: %s\n", url)
	}
}

func (a *Actions) patientID(raw string) (int, bool) {
	id, err := validate.PatientID(raw)
	if err != nil {
		a.out.Report(err)
		return 0, false
	}
	return id, true
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func date(t time.Time) string {
	return t.Format(constants.DateLayout)
}

func patientRows(patients []*repo.Patient) [][]string {
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, strconv.Itoa(p.Age), p.Gender, date(p.AdmissionDate), p.ContactNo})
	}
	return rows
}

func doctorRows(doctors []*repo.Doctor) [][]string {
	rows := make([][]string, 0, len(doctors))
	for _, d := range doctors {
		rows = append(rows, []string{d.ID, d.Name, d.Specialization, d.ContactNo})
	}
	return rows
}

func appointmentRows(appts []*repo.Appointment) [][]string {
	rows := make([][]string, 0, len(appts))
	for _, ap := range appts {
		rows = append(rows, []string{ap.ID, strconv.Itoa(ap.PatientID), ap.DoctorID, date(ap.Date), ap.Diagnosis, money(ap.ConsultingCharge)})
	}
	return rows
}

func billRows(bills []*repo.Bill) [][]string {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, []string{b.ID, strconv.Itoa(b.PatientID), money(b.TotalAmount), date(b.BillingDate)})
	}
	return rows
}
