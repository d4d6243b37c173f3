package core

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

type releaseResolver interface {
	Resolve(request contracts.InstallRequest) (url.URL, error)
}

type archiveDownloader interface {
	Download(address url.URL) (string, error)
}

type archiveInstaller interface {
	Install(archivePath, targetDirectory string) error
}

type directoryPruner interface {
	Prune(root string, patterns []string) error
}

type updateRunner interface {
	LocateScript(installDirectory string) (string, error)
	RemoveStaleLocks(installDirectory string)
	RunUpdate(script string, options contracts.UpdateOptions) (int, error)
}

type installationFileSystem interface {
	contracts.FileChecker
	contracts.DirectoryCreator
}

// Installation sequences one run: directory setup, version validation,
// resolve, download, extract, and the optional database refresh. It fails
// fast; there is no rollback of completed steps.
type Installation struct {
	logger     *logging.Logger
	resolver   releaseResolver
	downloads  archiveDownloader
	archives   archiveInstaller
	pruner     directoryPruner
	updater    updateRunner
	filesystem installationFileSystem
	request    contracts.InstallRequest
}

func NewInstallation(
	resolver releaseResolver,
	downloads archiveDownloader,
	archives archiveInstaller,
	pruner directoryPruner,
	updater updateRunner,
	filesystem installationFileSystem,
	request contracts.InstallRequest,
) *Installation {
	return &Installation{
		resolver:   resolver,
		downloads:  downloads,
		archives:   archives,
		pruner:     pruner,
		updater:    updater,
		filesystem: filesystem,
		request:    request,
	}
}

func (this *Installation) Install() error {
	err := this.prepareDirectories()
	if err != nil {
		return err
	}

	if !ValidVersion(this.request.RequestedVersion) {
		return fmt.Errorf("%w: %q", contracts.ErrInvalidVersion, this.request.RequestedVersion)
	}

	if this.request.Preexisting {
		_, err = this.filesystem.Stat(this.request.InstallPath)
		if err != nil {
			return fmt.Errorf("pre-existing installation not found at %q: %s", this.request.InstallPath, err)
		}
		this.logger.Printf("Using pre-existing dependency-check installation at %s", this.request.InstallPath)
	} else {
		err = this.installFresh()
		if err != nil {
			return err
		}
	}

	if !this.request.UpdateOnly {
		return nil
	}
	return this.refreshDatabase()
}

func (this *Installation) prepareDirectories() error {
	for _, directory := range []string{this.request.LogDirectory, this.request.ExportDirectory} {
		err := this.filesystem.EnsureDirectory(directory)
		if err != nil {
			return err
		}
	}
	return nil
}

func (this *Installation) installFresh() error {
	err := this.filesystem.EnsureDirectory(this.request.InstallPath)
	if err != nil {
		return err
	}
	err = this.pruner.Prune(this.request.InstallPath, KeepDataPatterns)
	if err != nil {
		return err
	}
	address, err := this.resolver.Resolve(this.request)
	if err != nil {
		return err
	}
	archive, err := this.downloads.Download(address)
	if err != nil {
		return err
	}
	// Release archives carry a top-level dependency-check folder.
	return this.archives.Install(archive, filepath.Dir(this.request.InstallPath))
}

func (this *Installation) refreshDatabase() error {
	script, err := this.updater.LocateScript(this.request.InstallPath)
	if err != nil {
		return err
	}
	this.updater.RemoveStaleLocks(this.request.InstallPath)
	_, err = this.updater.RunUpdate(script, contracts.UpdateOptions{
		ExportDirectory: this.request.ExportDirectory,
		LogFilePath:     this.request.LogFilePath(),
		Verbose:         this.request.Verbose,
	})
	return err
}
