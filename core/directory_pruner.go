package core

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/smartystreets/logging"

	"github.com/smarty/depcheck/contracts"
)

// KeepDataPatterns wipes a prior installation while preserving its downloaded
// vulnerability database.
var KeepDataPatterns = []string{"**", "!data", "!data/**"}

type PruneFileSystem interface {
	contracts.PathLister
	contracts.Deleter
}

type DirectoryPruner struct {
	logger     *logging.Logger
	filesystem PruneFileSystem
}

func NewDirectoryPruner(filesystem PruneFileSystem) *DirectoryPruner {
	return &DirectoryPruner{filesystem: filesystem}
}

// Prune deletes every file under root matching at least one pattern. Patterns
// prefixed with '!' negate: a path matching any negated pattern is kept.
func (this *DirectoryPruner) Prune(root string, patterns []string) error {
	listing, err := this.filesystem.Listing(root)
	if err != nil {
		return err
	}
	for _, file := range listing {
		relative, err := filepath.Rel(root, file.Path)
		if err != nil {
			return err
		}
		if !matchesAny(filepath.ToSlash(relative), patterns) {
			continue
		}
		this.logger.Printf("Pruning stale file: %s", file.Path)
		err = this.filesystem.Delete(file.Path)
		if err != nil {
			return err
		}
	}
	return nil
}

func matchesAny(path string, patterns []string) bool {
	included := false
	for _, pattern := range patterns {
		if negation, negated := strings.CutPrefix(pattern, "!"); negated {
			if match, _ := doublestar.Match(negation, path); match {
				return false
			}
		} else if match, _ := doublestar.Match(pattern, path); match {
			included = true
		}
	}
	return included
}
