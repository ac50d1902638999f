package types

// Config holds backend selection and parameters for opening a Store.
type Config struct {
	Backend        string `json:"backend" yaml:"backend"`
	DataDir        string `json:"data_dir" yaml:"data_dir"`
	BirthdayWindow int    `json:"birthday_window" yaml:"birthday_window"`
}

// Supported backend names.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONL:  true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.BirthdayWindow < 0 {
		return ErrWindowInvalid
	}
	return nil
}
