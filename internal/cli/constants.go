package cli

// Default values for CLI output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// EnvFile is loaded into the environment before the config is read.
	EnvFile = ".env"
)
