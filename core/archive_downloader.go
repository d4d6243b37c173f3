package core

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"

	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

// ArchiveDownloader saves a remote archive into the workspace directory under
// a name derived from the final component of the address path.
type ArchiveDownloader struct {
	logger     *logging.Logger
	client     contracts.Downloader
	filesystem contracts.FileCreator
	workspace  string
}

func NewArchiveDownloader(client contracts.Downloader, filesystem contracts.FileCreator, workspace string) *ArchiveDownloader {
	return &ArchiveDownloader{client: client, filesystem: filesystem, workspace: workspace}
}

func (this *ArchiveDownloader) Download(address url.URL) (string, error) {
	local := filepath.Join(this.workspace, path.Base(address.Path))
	this.logger.Printf("Downloading %s to %s", address.String(), local)

	body, err := this.client.Download(address)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	writer, err := this.filesystem.Create(local)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(writer, body)
	closeErr := writer.Close()
	if err != nil {
		return "", fmt.Errorf("failed to save %q: %w", local, err)
	}
	if closeErr != nil {
		return "", closeErr
	}
	return local, nil
}
