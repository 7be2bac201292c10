package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// rootFolderName is the display name of the media root node.
const rootFolderName = "media"

// FolderTree enumerates the directory hierarchy under the media root for
// navigation. Directories are materialized on demand when a tree is
// requested for a specific folder; they are never deleted here.
type FolderTree struct {
	resolver *PathResolver
}

func NewFolderTree(resolver *PathResolver) *FolderTree {
	return &FolderTree{resolver: resolver}
}

// Ensure resolves rel and creates the directory if it does not exist yet.
// Returns the absolute and canonical relative paths.
func (t *FolderTree) Ensure(rel string) (string, string, error) {
	abs, canonical, err := t.resolver.Resolve(rel)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", "", fmt.Errorf("create folder %q: %w", canonical, err)
	}
	return abs, canonical, nil
}

// BuildTree returns the nested folder structure rooted at rel. Children
// are sorted lexicographically by name; files are not included.
func (t *FolderTree) BuildTree(rel string) (*Folder, error) {
	abs, canonical, err := t.Ensure(rel)
	if err != nil {
		return nil, err
	}
	return t.walk(abs, canonical)
}

func (t *FolderTree) walk(abs, rel string) (*Folder, error) {
	node := &Folder{
		Name:     folderName(rel),
		Path:     rel,
		Children: []*Folder{},
	}
	entries, err := os.ReadDir(abs) // already sorted by filename
	if err != nil {
		return nil, fmt.Errorf("read folder %q: %w", rel, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child, err := t.walk(filepath.Join(abs, entry.Name()), path.Join(rel, entry.Name()))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Breadcrumbs splits a canonical folder path into its cumulative
// prefixes. The root yields an empty trail.
func Breadcrumbs(rel string) []Breadcrumb {
	if rel == "" {
		return []Breadcrumb{}
	}
	parts := strings.Split(rel, "/")
	crumbs := make([]Breadcrumb, 0, len(parts))
	for i, part := range parts {
		crumbs = append(crumbs, Breadcrumb{
			Name: part,
			Path: strings.Join(parts[:i+1], "/"),
		})
	}
	return crumbs
}

func folderName(rel string) string {
	if rel == "" {
		return rootFolderName
	}
	return path.Base(rel)
}
