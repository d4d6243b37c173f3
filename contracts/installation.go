package contracts

import (
	"path/filepath"
	"strings"
)

const LogFilename = "dependency-check-log.txt"

// InstallRequest carries one run's worth of installer inputs. Exactly one
// exists per run; it is never modified after the config loader returns it.
type InstallRequest struct {
	RequestedVersion   string
	CustomSourceURL    string
	InstallPath        string
	Preexisting        bool // caller supplied InstallPath; download is skipped
	ExportDirectory    string
	LogDirectory       string
	WorkspaceDirectory string // where downloaded archives land
	Verbose            bool
	UpdateOnly         bool // refresh the vulnerability database after install
	MaxRetry           int
}

func (this InstallRequest) LogFilePath() string {
	return filepath.Join(this.LogDirectory, LogFilename)
}

// UpdateOptions configures a single invocation of the dependency-check script.
type UpdateOptions struct {
	ExportDirectory string
	LogFilePath     string
	Verbose         bool
	Arguments       string // raw argument string; blank selects update-only mode
}

func (this UpdateOptions) CommandArguments() []string {
	arguments := strings.Fields(this.Arguments)
	if len(arguments) == 0 {
		arguments = []string{"--updateonly"}
	}
	if this.Verbose {
		arguments = append(arguments, "--log", this.LogFilePath)
	}
	return arguments
}
