package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/pkg/constants"
)

const (
	invoiceWidth  = 60
	nameColumn    = 30
	amountColumn  = 15
	summaryColumn = 47
)

// Invoice is everything printed on a bill's invoice.
type Invoice struct {
	Bill repo.Bill
	// PatientName is empty when the patient row no longer exists.
	PatientName string
	// Consultation is the patient's most recent appointment, nil when none.
	Consultation *Consultation
	Services     []*repo.BilledService
}

type Consultation struct {
	Date           time.Time
	DoctorName     string
	Specialization string
	Charge         float64
}

func (i *Invoice) ServiceTotal() float64 {
	return lo.SumBy(i.Services, func(s *repo.BilledService) float64 { return s.Cost })
}

func (i *Invoice) ConsultingCharge() float64 {
	if i.Consultation == nil {
		return 0
	}
	return i.Consultation.Charge
}

// Total is the amount due: billed services plus the latest consultation.
func (i *Invoice) Total() float64 {
	return i.ServiceTotal() + i.ConsultingCharge()
}

// FileName is the invoice file name, one file per patient.
func (i *Invoice) FileName() string {
	return fmt.Sprintf("bill_%d.txt", i.Bill.PatientID)
}

// Renderer lays invoices out as fixed-width text.
type Renderer struct {
	currency string
	hospital string
	contact  string
	dueDays  int
	p        *message.Printer
}

func NewRenderer(cfg config.InvoiceConfig) *Renderer {
	return &Renderer{
		currency: cfg.Currency,
		hospital: lo.Ternary(cfg.HospitalName == "", "our Hospital", cfg.HospitalName),
		contact:  cfg.ContactNumber,
		dueDays:  lo.Ternary(cfg.DueDays <= 0, 30, cfg.DueDays),
		p:        message.NewPrinter(language.English),
	}
}

func (r *Renderer) Render(inv *Invoice) string {
	heavy := strings.Repeat("=", invoiceWidth)
	light := strings.Repeat("-", invoiceWidth)

	lines := []string{
		heavy,
		"                        HOSPITAL INVOICE",
		heavy,
		fmt.Sprintf("Bill No.    : %-15s   Date: %s", inv.Bill.ID, inv.Bill.BillingDate.Format(constants.DateLayout)),
		fmt.Sprintf("Patient ID  : %-15d   Name: %s", inv.Bill.PatientID, lo.Ternary(inv.PatientName == "", "N/A", inv.PatientName)),
		light,
	}

	if c := inv.Consultation; c != nil {
		lines = append(lines,
			fmt.Sprintf("Doctor      : %s (%s)", c.DoctorName, c.Specialization),
			fmt.Sprintf("Consultation Charge: %s%s", r.currency, r.money(c.Charge)),
		)
	} else {
		lines = append(lines,
			"Doctor      : N/A",
			fmt.Sprintf("Consultation Charge: %s%s", r.currency, r.money(0)),
		)
	}

	lines = append(lines,
		light,
		fmt.Sprintf("%-*s %*s", nameColumn, "Service Name", amountColumn, "Amount"),
		light,
	)

	if len(inv.Services) == 0 {
		lines = append(lines, fmt.Sprintf("%-57s", "No services billed."))
	}
	for _, s := range inv.Services {
		lines = append(lines, fmt.Sprintf("%-*s %*s", nameColumn, truncate(s.ServiceName, nameColumn), amountColumn, r.money(s.Cost)))
	}

	lines = append(lines,
		light,
		r.summary("Service Total", inv.ServiceTotal()),
		r.summary("Consultation Charge", inv.ConsultingCharge()),
		light,
		r.summary("TOTAL AMOUNT DUE", inv.Total()),
		heavy,
		fmt.Sprintf("Payment due within %d days. For queries, call %s", r.dueDays, r.contact),
		heavy,
		fmt.Sprintf("        Thank you for choosing %s!", r.hospital),
		heavy,
	)

	return strings.Join(lines, "\n")
}

func (r *Renderer) summary(label string, v float64) string {
	return fmt.Sprintf("%*s : %s%s", summaryColumn, label, r.currency, r.money(v))
}

// money formats v with two decimals and grouped thousands, e.g. 1,500.00.
func (r *Renderer) money(v float64) string {
	return r.p.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
