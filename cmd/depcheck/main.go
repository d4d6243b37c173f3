package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"

	"github.com/smarty/depcheck/contracts"
	"github.com/smarty/depcheck/core"
	"github.com/smarty/depcheck/shell"
)

const defaultReleasesAddress = "https://api.github.com/repos/dependency-check/DependencyCheck/releases"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if isSubCommand("version") {
		versionMain()
		return
	}

	loader := core.NewInstallConfigLoader(shell.NewEnvironment(), os.Stderr)
	request, err := loader.LoadConfig("install", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	err = install(request)
	if err != nil {
		log.Fatal("[WARN] dependency-check installation failed: ", err)
	}
}

func install(request contracts.InstallRequest) error {
	releases, err := url.Parse(defaultReleasesAddress)
	if err != nil {
		return err
	}

	disk := shell.NewDiskFileSystem()
	client := core.NewRetryClient(shell.NewWebClient(shell.NewHTTPClient()), request.MaxRetry)

	installation := core.NewInstallation(
		core.NewReleaseResolver(client, *releases),
		core.NewArchiveDownloader(client, disk, request.WorkspaceDirectory),
		core.NewArchiveInstaller(shell.NewZipExtractor(), disk),
		core.NewDirectoryPruner(disk),
		core.NewUpdateRunner(disk, shell.NewShellProcessRunner(), runtime.GOOS),
		disk,
		request,
	)
	return installation.Install()
}

func isSubCommand(name string) bool {
	return len(os.Args) > 1 && os.Args[1] == name
}

func versionMain() {
	fmt.Printf("depcheck [%s]\n", ldflagsSoftwareVersion)
}

var ldflagsSoftwareVersion = "debug"
