// Package destination computes where a download request writes its files and
// makes sure the directory exists before any fetch starts.
package destination

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/afero"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Output template fragments understood by the fetch engine
const (
	ItemNameTemplate   = "%(title)s.%(ext)s"
	MemberNameTemplate = model.OrdinalPlaceholder + " - " + ItemNameTemplate
)

// Resolver turns a destination root into a ResolvedTarget
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a resolver on the given filesystem.
// A nil fs means the OS filesystem.
func NewResolver(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs}
}

// Resolve computes the output template for a request and creates the target
// directory. The only error it returns is a FilesystemError.
func (r *Resolver) Resolve(root string, kind model.Kind, collectionTitle mo.Option[string]) (model.ResolvedTarget, error) {
	if strings.TrimSpace(root) == "" {
		return model.ResolvedTarget{}, model.NewError(model.KindFilesystem, nil, "destination root is empty")
	}
	root = filepath.Clean(root)

	dir := root
	target := model.ResolvedTarget{Root: root}

	if kind == model.KindCollection {
		name, _ := CollectionDirName(collectionTitle.OrEmpty())
		dir = filepath.Join(root, name)
		if !isWithin(root, dir) {
			return model.ResolvedTarget{}, model.NewError(model.KindFilesystem, nil, "collection directory %q escapes %q", dir, root)
		}
		target.CollectionDir = mo.Some(dir)
		target.OutputTemplate = filepath.Join(escapeTemplate(dir), MemberNameTemplate)
	} else {
		target.OutputTemplate = filepath.Join(escapeTemplate(dir), ItemNameTemplate)
	}

	if err := platform.EnsureDir(r.fs, dir); err != nil {
		return model.ResolvedTarget{}, model.NewError(model.KindFilesystem, err, "cannot create %s", dir)
	}

	return target, nil
}

// isWithin reports whether path is root or below it
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
