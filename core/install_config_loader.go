package core

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/smarty/depcheck/contracts"
)

type InstallConfigLoader struct {
	environment contracts.Environment
	stderr      io.Writer
}

func NewInstallConfigLoader(environment contracts.Environment, stderr io.Writer) *InstallConfigLoader {
	return &InstallConfigLoader{environment: environment, stderr: stderr}
}

func (this *InstallConfigLoader) LoadConfig(name string, args []string) (request contracts.InstallRequest, err error) {
	request, err = this.parseCLI(name, args)
	if err != nil {
		return contracts.InstallRequest{}, err
	}

	this.applyEnvironmentDefaults(&request)

	err = this.validate(request)
	if err != nil {
		return contracts.InstallRequest{}, err
	}

	return request, nil
}

func (this *InstallConfigLoader) parseCLI(name string, args []string) (request contracts.InstallRequest, err error) {
	flags := flag.NewFlagSet("depcheck "+name, flag.ContinueOnError)
	flags.SetOutput(this.stderr)
	flags.StringVar(&request.RequestedVersion,
		"version",
		"latest",
		"Version of dependency-check to install ('latest' or major.minor.patch).",
	)
	flags.StringVar(&request.CustomSourceURL,
		"source-url",
		"",
		"When set, download the installation archive from this address instead of the release feed.",
	)
	flags.StringVar(&request.InstallPath,
		"install-path",
		"",
		"Path of a pre-existing dependency-check installation. When blank, a fresh copy is installed.",
	)
	flags.StringVar(&request.ExportDirectory,
		"export-dir",
		"",
		"Directory to receive exported reports.",
	)
	flags.StringVar(&request.LogDirectory,
		"log-dir",
		"",
		"Directory to receive the dependency-check log file.",
	)
	flags.BoolVar(&request.Verbose,
		"verbose",
		false,
		"When set, pass a log file to dependency-check for extra diagnostic output.",
	)
	flags.BoolVar(&request.UpdateOnly,
		"update",
		true,
		"When set, refresh the vulnerability database after installation.",
	)
	flags.IntVar(&request.MaxRetry,
		"max-retry",
		5,
		"How many times to retry attempts to download the installation archive.",
	)

	flags.Usage = func() {
		_, _ = fmt.Fprintf(this.stderr, "Usage of depcheck %s:\n", name)
		flags.PrintDefaults()
		_, _ = fmt.Fprintln(this.stderr, `
exit code 0: success
exit code 1: general failure (see stderr for details)`)
	}
	err = flags.Parse(args)

	return request, err
}

// Directory inputs equal to the build source directory mean 'unset': the
// hosted task populated every optional path input with that directory.
func (this *InstallConfigLoader) applyEnvironmentDefaults(request *contracts.InstallRequest) {
	source, _ := this.environment.LookupEnv("BUILD_SOURCESDIRECTORY")
	staging, _ := this.environment.LookupEnv("BUILD_ARTIFACTSTAGINGDIRECTORY")
	defaultRoot := filepath.Join(staging, "dependency-check")

	if source != "" {
		for _, directory := range []*string{&request.InstallPath, &request.ExportDirectory, &request.LogDirectory} {
			if *directory == source {
				*directory = ""
			}
		}
	}

	request.Preexisting = request.InstallPath != ""
	if request.InstallPath == "" {
		request.InstallPath = defaultRoot
	}
	if request.ExportDirectory == "" {
		request.ExportDirectory = defaultRoot
	}
	if request.LogDirectory == "" {
		request.LogDirectory = defaultRoot
	}
	request.WorkspaceDirectory = filepath.Dir(request.InstallPath)

	debug, _ := this.environment.LookupEnv("SYSTEM_DEBUG")
	if strings.EqualFold(debug, "true") {
		request.Verbose = true
	}
}

func (this *InstallConfigLoader) validate(request contracts.InstallRequest) error {
	if request.MaxRetry < 0 {
		return negativeMaxRetryErr
	}
	if request.RequestedVersion == "" {
		return blankVersionErr
	}
	return nil
}

var (
	negativeMaxRetryErr = errors.New("max-retry must not be negative")
	blankVersionErr     = errors.New("version is required")
)
