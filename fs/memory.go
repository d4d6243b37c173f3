package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/smarty/depcheck/contracts"
)

type InMemoryFileSystem struct {
	files       map[string]*file
	directories map[string]bool
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{
		files:       make(map[string]*file),
		directories: make(map[string]bool),
	}
}

func (this *InMemoryFileSystem) Listing(root string) (listing []contracts.FileInfo, err error) {
	prefix := filepath.Clean(root) + string(filepath.Separator)
	for path, file := range this.files {
		if strings.HasPrefix(path, prefix) {
			listing = append(listing, file.info())
		}
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].Path < listing[j].Path })
	return listing, nil
}

func (this *InMemoryFileSystem) Stat(path string) (contracts.FileInfo, error) {
	path = filepath.Clean(path)
	if target, found := this.files[path]; found {
		return target.info(), nil
	}
	if this.directories[path] {
		return contracts.FileInfo{Path: path, ModTime: InMemoryModTime}, nil
	}
	return contracts.FileInfo{}, os.ErrNotExist
}

func (this *InMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	target, found := this.files[filepath.Clean(path)]
	if !found {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(target.contents)), nil
}

func (this *InMemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	err := this.WriteFile(path, nil)
	if err != nil {
		return nil, err
	}
	return this.files[filepath.Clean(path)], nil
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	target, found := this.files[filepath.Clean(path)]
	if !found {
		return nil, os.ErrNotExist
	}
	return target.contents, nil
}

func (this *InMemoryFileSystem) WriteFile(path string, content []byte) error {
	path = filepath.Clean(path)
	this.files[path] = &file{path: path, contents: content, mod: InMemoryModTime}
	return nil
}

func (this *InMemoryFileSystem) Delete(path string) error {
	path = filepath.Clean(path)
	if _, found := this.files[path]; !found {
		return os.ErrNotExist
	}
	delete(this.files, path)
	return nil
}

func (this *InMemoryFileSystem) EnsureDirectory(path string) error {
	this.directories[filepath.Clean(path)] = true
	return nil
}

func (this *InMemoryFileSystem) DirectoryExists(path string) bool {
	return this.directories[filepath.Clean(path)]
}

/////////////////////////////////////////////////

type file struct {
	path     string
	contents []byte
	mod      time.Time
}

var InMemoryModTime = time.Now()

func (this *file) info() contracts.FileInfo {
	return contracts.FileInfo{Path: this.path, Size: int64(len(this.contents)), ModTime: this.mod}
}

func (this *file) Write(p []byte) (n int, err error) {
	this.contents = append(this.contents, p...)
	return len(p), nil
}

func (this *file) Close() error {
	return nil
}
