package codes

// Sequence describes how ids of one record kind are generated.
type Sequence struct {
	Prefix string
	Width  int
}

// Next returns the id following the largest matching id in existing.
func (s Sequence) Next(existing []string) string {
	return NextSequence(existing, s.Prefix, s.Width)
}

var (
	Doctor      = Sequence{Prefix: "D", Width: 3}
	Service     = Sequence{Prefix: "S", Width: 2}
	Appointment = Sequence{Prefix: "A", Width: 3}
	Bill        = Sequence{Prefix: "B", Width: 3}
)

// PatientStart is the first patient id handed out on an empty table.
const PatientStart = 1001
