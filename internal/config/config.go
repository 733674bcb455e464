// Package config holds the server's runtime configuration: the CLI flags
// described in SPEC_FULL's external-interfaces section plus whatever the
// client supplied via InitializationOptions, mirroring the way the
// teacher's Config aggregates CLI/client-supplied settings into one struct
// logging reads from.
package config

// Config is the server's resolved runtime configuration.
type Config struct {
	// WorkspaceRoot is the single workspace folder's filesystem path,
	// resolved during initialize.
	WorkspaceRoot string

	// LogFile is the path commonlog should write to, from --log-file.
	LogFile string
	// StartNewLogFile truncates LogFile instead of appending, from
	// --start-new-log-file.
	StartNewLogFile bool
	// LogTimestamps records --log-timestamps. Nothing reads it: log line
	// format does not change with its value.
	LogTimestamps bool

	// ProjectManifestPath optionally points at a kls-test-project.json
	// fixture; when empty the server falls back to the convention-based
	// default project layout.
	ProjectManifestPath string
}

// NewConfig returns a Config with the teacher's convention of defaulting
// ambient toggles on rather than off.
func NewConfig() *Config {
	return &Config{LogTimestamps: true}
}

// ApplyInitializationOptions merges client-supplied InitializationOptions
// (a loosely-typed map, as glsp hands it to Initialize) into c.
func (c *Config) ApplyInitializationOptions(opts any) {
	m, ok := opts.(map[string]any)
	if !ok {
		return
	}
	if v, ok := m["project_manifest_path"]; ok {
		if s, ok := v.(string); ok && s != "" {
			c.ProjectManifestPath = s
		}
	}
}
