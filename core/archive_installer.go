package core

import (
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

// ArchiveInstaller extracts a downloaded archive and deletes it afterward.
// Extraction failures are returned to the caller, never swallowed.
type ArchiveInstaller struct {
	logger     *logging.Logger
	extractor  contracts.Extractor
	filesystem contracts.Deleter
}

func NewArchiveInstaller(extractor contracts.Extractor, filesystem contracts.Deleter) *ArchiveInstaller {
	return &ArchiveInstaller{extractor: extractor, filesystem: filesystem}
}

func (this *ArchiveInstaller) Install(archivePath, targetDirectory string) error {
	this.logger.Printf("Extracting %s into %s", archivePath, targetDirectory)
	err := this.extractor.Extract(archivePath, targetDirectory)
	if err != nil {
		return fmt.Errorf("extraction of %q failed: %w", archivePath, err)
	}
	return this.filesystem.Delete(archivePath)
}
