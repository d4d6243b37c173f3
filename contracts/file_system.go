package contracts

import (
	"io"
	"time"
)

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type Deleter interface {
	Delete(path string) error
}

type FileChecker interface {
	Stat(path string) (FileInfo, error)
}

type PathLister interface {
	Listing(root string) ([]FileInfo, error)
}

type DirectoryCreator interface {
	EnsureDirectory(path string) error
}

type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

type FileSystem interface {
	FileOpener
	FileCreator
	FileReader
	FileWriter
	Deleter
	FileChecker
	PathLister
	DirectoryCreator
}
