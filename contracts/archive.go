package contracts

type Extractor interface {
	Extract(archivePath, targetDirectory string) error
}
