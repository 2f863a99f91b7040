// Package globals provides the flag values shared between CLI commands
// and the output layer.
package globals

// Flags holds global common flags across all commands.
type Flags struct {
	Output  string
	Quiet   bool
	Verbose bool
	NoColor bool
}
