package shell

import (
	"io"
	"os"
	"path/filepath"

	"github.com/smarty/depcheck/contracts"
)

type DiskFileSystem struct{}

func NewDiskFileSystem() *DiskFileSystem {
	return &DiskFileSystem{}
}

func (this *DiskFileSystem) Listing(root string) (listing []contracts.FileInfo, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		listing = append(listing, contracts.FileInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (this *DiskFileSystem) Stat(path string) (contracts.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return contracts.FileInfo{}, err
	}
	return contracts.FileInfo{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (this *DiskFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (this *DiskFileSystem) Create(path string) (io.WriteCloser, error) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0644)
}

func (this *DiskFileSystem) Delete(path string) error {
	return os.Remove(path)
}

func (this *DiskFileSystem) EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}
