package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/export"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
)

// Menu drives the actions from numbered text menus. End of input leaves
// every menu as if the operator chose to exit.
type Menu struct {
	a      *Actions
	in     *bufio.Scanner
	closed bool
}

func NewMenu(a *Actions, in io.Reader) *Menu {
	return &Menu{a: a, in: bufio.NewScanner(in)}
}

// ask prints label and reads one trimmed line.
func (m *Menu) ask(label string) string {
	m.a.out.Printf("%s", label)
	if !m.in.Scan() {
		m.closed = true
		m.a.out.Println()
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

// form asks every label in order. It reports false when input ended before
// the last answer.
func (m *Menu) form(labels ...string) ([]string, bool) {
	answers := make([]string, len(labels))
	for i, label := range labels {
		answers[i] = m.ask(label)
		if m.closed {
			return nil, false
		}
	}
	return answers, true
}

// choose prints a titled list of options and returns the operator's choice.
func (m *Menu) choose(title string, options ...string) string {
	m.a.out.Println()
	m.a.out.Println(title)
	for i, opt := range options {
		m.a.out.Printf("%d. %s\n", i+1, opt)
	}
	return m.ask("Select an option: ")
}

func (m *Menu) Run(ctx context.Context) {
	for !m.closed {
		switch m.choose("=== Hospital Management CLI ===",
			"Patient Management",
			"Doctor Management",
			"Service Management",
			"Appointment Management",
			"Billing Management",
			"Export Management",
			"Exit",
		) {
		case "1":
			m.patients(ctx)
		case "2":
			m.doctors(ctx)
		case "3":
			m.services(ctx)
		case "4":
			m.appointments(ctx)
		case "5":
			m.billing(ctx)
		case "6":
			m.exports(ctx)
		case "7":
			m.closed = true
		default:
			if !m.closed {
				m.a.out.Println("Invalid choice. Please try again.")
			}
		}
	}
	m.a.out.Println("Exiting Hospital Management CLI. Bye!")
}

func (m *Menu) patients(ctx context.Context) {
	for !m.closed {
		switch m.choose("=== Patient Management ===",
			"Search Patient",
			"Add Patient",
			"View All Patients",
			"Update Patient",
			"Delete Patient",
			"Service Usage of Patient",
			"Days Admitted for a Patient",
			"Back to Main Menu",
		) {
		case "1":
			if f, ok := m.form("Enter part or full patient name: "); ok {
				m.a.SearchPatients(ctx, f[0])
			}
		case "2":
			id, ok := m.a.NextPatientID(ctx)
			if !ok {
				continue
			}
			f, ok := m.form("Enter Name: ", "Enter Age: ", "Enter Gender: ", "Enter Admission Date (YYYY-MM-DD): ", "Enter Contact No: ")
			if ok {
				m.a.AddPatient(ctx, id, patient.Input{Name: f[0], Age: f[1], Gender: f[2], AdmissionDate: f[3], ContactNo: f[4]})
			}
		case "3":
			m.a.ViewPatients(ctx)
		case "4":
			f, ok := m.form("Enter Patient ID to update: ", "Enter New Name: ", "Enter New Age: ", "Enter New Gender (M/F/Other): ",
				"Enter New Admission Date (YYYY-MM-DD): ", "Enter New Contact No: ")
			if ok {
				m.a.UpdatePatient(ctx, f[0], patient.Input{Name: f[1], Age: f[2], Gender: f[3], AdmissionDate: f[4], ContactNo: f[5]})
			}
		case "5":
			if f, ok := m.form("Enter Patient ID to delete: "); ok {
				m.a.DeletePatient(ctx, f[0])
			}
		case "6":
			if f, ok := m.form("Enter Patient ID: "); ok {
				m.usage(ctx, f[0])
			}
		case "7":
			if f, ok := m.form("Enter Patient ID: "); ok {
				m.a.DaysAdmitted(ctx, f[0])
			}
		case "8":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid Choice. Please try again.")
			}
		}
	}
}

func (m *Menu) usage(ctx context.Context, patientID string) {
	for !m.closed {
		switch m.choose(fmt.Sprintf("Service Usage of Patient: %s", patientID),
			"Add Service Usage",
			"View Services Used",
			"Clear Services (after billing)",
			"Back to Patient Management",
		) {
		case "1":
			if f, ok := m.form("Enter Service ID: "); ok {
				m.a.StageService(ctx, patientID, f[0])
			}
		case "2":
			m.a.ViewStaged(ctx, patientID)
		case "3":
			m.a.ClearStaged(ctx, patientID)
		case "4":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid choice. Please try again.")
			}
		}
	}
}

func (m *Menu) doctors(ctx context.Context) {
	for !m.closed {
		switch m.choose("=== Doctor Management ===",
			"Search Doctor",
			"Add Doctor",
			"View All Doctors",
			"Update Doctor",
			"Delete Doctor",
			"Back to Main Menu",
		) {
		case "1":
			if f, ok := m.form("Enter part or full doctor name: "); ok {
				m.a.SearchDoctors(ctx, f[0])
			}
		case "2":
			id, ok := m.a.NextDoctorID(ctx)
			if !ok {
				continue
			}
			if f, ok := m.form("Enter Name: ", "Enter Specialization: ", "Enter Contact No: "); ok {
				m.a.AddDoctor(ctx, id, doctor.Input{Name: f[0], Specialization: f[1], ContactNo: f[2]})
			}
		case "3":
			m.a.ViewDoctors(ctx)
		case "4":
			f, ok := m.form("Enter Doctor ID to update: ", "Enter New Name: ", "Enter New Specialization: ", "Enter New Contact No: ")
			if ok {
				m.a.UpdateDoctor(ctx, f[0], doctor.Input{Name: f[1], Specialization: f[2], ContactNo: f[3]})
			}
		case "5":
			if f, ok := m.form("Enter Doctor ID to delete: "); ok {
				m.a.DeleteDoctor(ctx, f[0])
			}
		case "6":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid Choice. Please try again.")
			}
		}
	}
}

func (m *Menu) services(ctx context.Context) {
	for !m.closed {
		switch m.choose("=== Service Management ===",
			"Add Service",
			"View All Services",
			"Update Service",
			"Delete Service",
			"Back to Main Menu",
		) {
		case "1":
			id, ok := m.a.NextServiceID(ctx)
			if !ok {
				continue
			}
			if f, ok := m.form("Enter Service Name: ", "Enter Cost: "); ok {
				m.a.AddService(ctx, id, catalog.Input{Name: f[0], Cost: f[1]})
			}
		case "2":
			m.a.ViewServices(ctx)
		case "3":
			if f, ok := m.form("Enter Service ID to update: ", "Enter New Service Name: ", "Enter New Cost: "); ok {
				m.a.UpdateService(ctx, f[0], catalog.Input{Name: f[1], Cost: f[2]})
			}
		case "4":
			if f, ok := m.form("Enter Service ID to delete: "); ok {
				m.a.DeleteService(ctx, f[0])
			}
		case "5":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid Choice. Please try again.")
			}
		}
	}
}

func (m *Menu) appointments(ctx context.Context) {
	for !m.closed {
		switch m.choose("=== Appointments Management ===",
			"Add Appointment",
			"View All Appointments",
			"Update Appointment",
			"Delete Appointment",
			"Filter Appointments by Date",
			"Total Days between Appointments of Patient",
			"Back to Main Menu",
		) {
		case "1":
			id, ok := m.a.NextAppointmentID(ctx)
			if !ok {
				continue
			}
			f, ok := m.form("Enter Patient ID: ", "Enter Doctor ID: ", "Enter Appointment Date (YYYY-MM-DD): ",
				"Enter Diagnosis: ", "Enter Consulting Charge [leave blank for 0]: ")
			if ok {
				m.a.AddAppointment(ctx, id, appointment.Input{PatientID: f[0], DoctorID: f[1], Date: f[2], Diagnosis: f[3], ConsultingCharge: f[4]})
			}
		case "2":
			m.a.ViewAppointments(ctx)
		case "3":
			f, ok := m.form("Enter Appointment ID to update: ", "Enter New Patient ID: ", "Enter New Doctor ID: ",
				"Enter New Appointment Date (YYYY-MM-DD): ", "Enter New Diagnosis: ", "Enter New Consulting Charge [leave blank for 0]: ")
			if ok {
				m.a.UpdateAppointment(ctx, f[0], appointment.Input{PatientID: f[1], DoctorID: f[2], Date: f[3], Diagnosis: f[4], ConsultingCharge: f[5]})
			}
		case "4":
			if f, ok := m.form("Enter Appointment ID to delete: "); ok {
				m.a.DeleteAppointment(ctx, f[0])
			}
		case "5":
			if f, ok := m.form("Enter start date(YYYY-MM-DD): ", "Enter end date(YYYY-MM-DD): "); ok {
				m.a.FilterAppointments(ctx, f[0], f[1])
			}
		case "6":
			if f, ok := m.form("Enter Patient ID: "); ok {
				m.a.DaysBetween(ctx, f[0])
			}
		case "7":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid Choice. Please try again.")
			}
		}
	}
}

func (m *Menu) billing(ctx context.Context) {
	for !m.closed {
		switch m.choose("Billing Management",
			"Add Bill",
			"View All Bills",
			"Update Bill",
			"Delete Bill",
			"Compute Total Billing",
			"Generate Invoice",
			"Back to Main Menu",
		) {
		case "1":
			id, ok := m.a.NextBillID(ctx)
			if !ok {
				continue
			}
			if f, ok := m.form("Enter Patient ID: ", "Enter Billing Date (YYYY-MM-DD) [leave blank for today]: "); ok {
				m.a.AddBill(ctx, billing.Input{ID: id, PatientID: f[0], BillingDate: f[1]})
			}
		case "2":
			m.a.ViewBills(ctx)
		case "3":
			f, ok := m.form("Enter Bill ID to update: ", "Enter New Patient ID: ",
				"Enter New Billing Date (YYYY-MM-DD) [leave blank for today]: ")
			if ok {
				m.a.UpdateBill(ctx, billing.Input{ID: f[0], PatientID: f[1], BillingDate: f[2]})
			}
		case "4":
			if f, ok := m.form("Enter Bill ID to delete: "); ok {
				m.a.DeleteBill(ctx, f[0])
			}
		case "5":
			if f, ok := m.form("Enter Patient ID to compute total billing: "); ok {
				m.a.ComputeTotal(ctx, f[0])
			}
		case "6":
			m.invoice(ctx)
		case "7":
			return
		default:
			if !m.closed {
				m.a.out.Println("Invalid Choice. Please try again.")
			}
		}
	}
}

func (m *Menu) invoice(ctx context.Context) {
	m.a.out.Println("Generate Invoice Options:")
	m.a.out.Println("1. By Bill ID")
	m.a.out.Println("2. By Patient ID")

	switch m.ask("Select an option: ") {
	case "1":
		if f, ok := m.form("Enter Bill ID to generate invoice: "); ok {
			m.a.InvoiceForBill(ctx, f[0], InvoiceOptions{})
		}
	case "2":
		f, ok := m.form("Enter Patient ID to generate invoice: ")
		if !ok {
			return
		}
		bills, ok := m.a.PatientBills(ctx, f[0])
		if !ok {
			return
		}
		if len(bills) == 1 {
			m.a.InvoiceForBill(ctx, bills[0].ID, InvoiceOptions{})
			return
		}
		m.a.ListBillChoices(bills)
		raw := m.ask("Select bill number to generate invoice: ")
		if m.closed {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			m.a.out.Println("Invalid input. Please enter a number.")
			return
		}
		if n < 1 || n > len(bills) {
			m.a.out.Println("Invalid selection.")
			return
		}
		m.a.InvoiceForBill(ctx, bills[n-1].ID, InvoiceOptions{})
	default:
		if !m.closed {
			m.a.out.Println("Invalid option for invoice generation.")
		}
	}
}

var exportPrompts = []struct {
	kind  export.Kind
	label string
	noun  string
}{
	{export.Billing, "Export Billing Summary to CSV", "billing summary"},
	{export.Appointments, "Export Appointment Summary to CSV", "appointment summary"},
	{export.Patients, "Export Patients to CSV", "patients"},
	{export.Doctors, "Export Doctors to CSV", "doctors"},
	{export.Services, "Export Services to CSV", "services"},
}

func (m *Menu) exports(ctx context.Context) {
	options := make([]string, 0, len(exportPrompts)+1)
	for _, p := range exportPrompts {
		options = append(options, p.label)
	}
	options = append(options, "Back to Main Menu")

	for !m.closed {
		choice := m.choose("=== Export Management ===", options...)
		n, err := strconv.Atoi(choice)
		switch {
		case m.closed:
			return
		case err == nil && n == len(options):
			return
		case err == nil && n >= 1 && n < len(options):
			p := exportPrompts[n-1]
			def := export.DefaultFileName(p.kind, export.CSV)
			f, ok := m.form(fmt.Sprintf("Enter filename for %s (default: %s): ", p.noun, def))
			if ok {
				m.a.Export(ctx, string(p.kind), f[0], string(export.CSV), false)
			}
		default:
			m.a.out.Println("Invalid choice.")
		}
	}
}
