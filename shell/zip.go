package shell

import "github.com/mholt/archiver/v3"

type ZipExtractor struct{}

func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

func (this *ZipExtractor) Extract(archivePath, targetDirectory string) error {
	zip := archiver.Zip{
		OverwriteExisting: true,
		MkdirAll:          true,
	}
	return zip.Unarchive(archivePath, targetDirectory)
}
