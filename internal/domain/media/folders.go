package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FolderRepository creates and renames directories under the media root.
// Folders are never deleted through this core; empty ones simply remain.
type FolderRepository struct {
	resolver *PathResolver
}

func NewFolderRepository(resolver *PathResolver) *FolderRepository {
	return &FolderRepository{resolver: resolver}
}

// Create makes a new directory named name under parent, creating any
// missing ancestors of parent. An existing entry of the same name is a
// conflict.
func (r *FolderRepository) Create(parent, name string) (*Folder, error) {
	n := SanitizeSegment(name)
	if n == "" {
		return nil, ErrInvalidPath
	}
	parentAbs, parentRel, err := r.resolver.Resolve(parent)
	if err != nil {
		return nil, err
	}
	abs := filepath.Join(parentAbs, n)
	if err := r.resolver.EnsureWithinRoot(abs); err != nil {
		return nil, err
	}
	rel := path.Join(parentRel, n)

	unlock := r.resolver.LockPaths(abs)
	defer unlock()

	if _, err := os.Lstat(abs); err == nil {
		return nil, ErrConflict
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create folder %q: %w", rel, err)
	}
	return &Folder{Name: n, Path: rel, Children: []*Folder{}}, nil
}

// Rename relocates the directory at rel to a sibling named newName. The
// media root itself cannot be renamed. Descendant assets move implicitly
// with the directory; their embedded references in articles are NOT
// re-synchronized here — a known limitation of this core.
func (r *FolderRepository) Rename(rel, newName string) (*Folder, error) {
	abs, canonical, err := r.resolver.Resolve(rel)
	if err != nil {
		return nil, err
	}
	if canonical == "" {
		return nil, ErrInvalidOperation
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, ErrNotFound
	}

	n := SanitizeSegment(newName)
	if n == "" {
		return nil, ErrInvalidPath
	}
	parentRel := path.Dir(canonical)
	if parentRel == "." {
		parentRel = ""
	}
	dstAbs := filepath.Join(filepath.Dir(abs), n)
	if err := r.resolver.EnsureWithinRoot(dstAbs); err != nil {
		return nil, err
	}
	dstRel := path.Join(parentRel, n)

	if dstRel == canonical {
		return &Folder{Name: n, Path: dstRel, Children: []*Folder{}}, nil
	}

	unlock := r.resolver.LockPaths(abs, dstAbs)
	defer unlock()

	if _, err := os.Lstat(dstAbs); err == nil {
		return nil, ErrConflict
	}
	if err := os.Rename(abs, dstAbs); err != nil {
		return nil, fmt.Errorf("rename folder %q to %q: %w", canonical, dstRel, err)
	}
	return &Folder{Name: n, Path: dstRel, Children: []*Folder{}}, nil
}
