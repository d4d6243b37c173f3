package shell

import (
	"errors"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/smarty/depcheck/contracts"
)

// ShellProcessRunner executes commands with output streamed to this process's
// stdout/stderr; output on stderr does not by itself fail a command.
type ShellProcessRunner struct{}

func NewShellProcessRunner() *ShellProcessRunner {
	return &ShellProcessRunner{}
}

func (this *ShellProcessRunner) Execute(command contracts.Command) (int, error) {
	process := exec.Command(command.Executable, command.Arguments...)
	process.Env = append(os.Environ(), command.Environment...)
	process.Stdout = os.Stdout
	process.Stderr = os.Stderr
	log.Printf("Executing: %s %s", command.Executable, strings.Join(command.Arguments, " "))

	err := process.Run()
	if err == nil {
		return 0, nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode(), nil
	}
	return -1, err
}
