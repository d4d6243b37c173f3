package core

import (
	"fmt"
	"path/filepath"

	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

// The dependency-check analyzers need a deeper stack than the JVM default.
const javaStackSize = "JAVA_OPTS=-Xss8192k"

type UpdateRunnerFileSystem interface {
	contracts.FileChecker
	contracts.PathLister
	contracts.Deleter
}

// UpdateRunner invokes the installed dependency-check script to refresh its
// vulnerability database.
type UpdateRunner struct {
	logger     *logging.Logger
	filesystem UpdateRunnerFileSystem
	processes  contracts.ProcessRunner
	platform   string
}

func NewUpdateRunner(filesystem UpdateRunnerFileSystem, processes contracts.ProcessRunner, platform string) *UpdateRunner {
	return &UpdateRunner{filesystem: filesystem, processes: processes, platform: platform}
}

func (this *UpdateRunner) LocateScript(installDirectory string) (string, error) {
	name := "dependency-check.sh"
	if this.platform == "windows" {
		name = "dependency-check.bat"
	}
	script := filepath.Join(installDirectory, "bin", name)
	_, err := this.filesystem.Stat(script)
	if err != nil {
		return "", fmt.Errorf("%w at %q: %s", contracts.ErrMissingExecutable, script, err)
	}
	return script, nil
}

// RemoveStaleLocks clears lock files left behind by an interrupted run. A
// single-agent installation cannot host concurrent scans, so unconditional
// removal is safe here.
func (this *UpdateRunner) RemoveStaleLocks(installDirectory string) {
	listing, err := this.filesystem.Listing(installDirectory)
	if err != nil {
		this.logger.Println("[WARN] could not search for stale lock files:", err)
		return
	}
	for _, file := range listing {
		if filepath.Ext(file.Path) != ".lock" {
			continue
		}
		err = this.filesystem.Delete(file.Path)
		if err != nil {
			this.logger.Printf("[WARN] could not remove stale lock file %s: %s", file.Path, err)
		} else {
			this.logger.Printf("Removed stale lock file: %s", file.Path)
		}
	}
}

// RunUpdate probes the script with --version, then refreshes the database.
// A non-zero exit code from the refresh is logged but not escalated.
func (this *UpdateRunner) RunUpdate(script string, options contracts.UpdateOptions) (int, error) {
	exit, err := this.processes.Execute(contracts.Command{
		Executable:  script,
		Arguments:   []string{"--version"},
		Environment: []string{javaStackSize},
	})
	if err != nil {
		return exit, fmt.Errorf("dependency-check version probe failed: %w", err)
	}
	if exit != 0 {
		return exit, fmt.Errorf("dependency-check version probe failed with exit code %d", exit)
	}

	exit, err = this.processes.Execute(contracts.Command{
		Executable:  script,
		Arguments:   options.CommandArguments(),
		Environment: []string{javaStackSize},
	})
	if err != nil {
		return exit, err
	}
	this.logger.Printf("dependency-check update completed with exit code %d.", exit)
	if exit != 0 {
		this.logger.Println("[WARN] non-zero exit code from dependency-check update.")
	}
	return exit, nil
}
