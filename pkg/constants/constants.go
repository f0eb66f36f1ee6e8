package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix prefixes every environment override, e.g. HOSPITAL_DATABASE_HOST.
	EnvPrefix = "HOSPITAL"

	AppName = "hospital"

	// DateLayout is the only date format accepted from operators and written to files.
	DateLayout = "2006-01-02"
)
