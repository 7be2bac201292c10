package media

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxUploadBytes caps a single upload at 25 MB.
const DefaultMaxUploadBytes = 25 * 1024 * 1024

// fallbackBaseName is used when an original filename sanitizes to nothing.
const fallbackBaseName = "media"

// AssetRepository lists, stores, renames and deletes individual files
// under the media root. Every listing is recomputed from the filesystem;
// no state is cached between calls.
type AssetRepository struct {
	resolver  *PathResolver
	webPrefix string
	maxBytes  int64
	now       func() time.Time // swapped out in tests
}

func NewAssetRepository(resolver *PathResolver, webPrefix string, maxBytes int64) *AssetRepository {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &AssetRepository{
		resolver:  resolver,
		webPrefix: webPrefix,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// List returns the regular files directly inside folder (non-recursive),
// optionally filtered by a case-insensitive substring match on the
// filename, sorted most-recently-uploaded first, then by filename.
// A folder that does not exist yet lists as empty.
func (r *AssetRepository) List(folder, search string) ([]*Asset, error) {
	abs, canonical, err := r.resolver.Resolve(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if os.IsNotExist(err) {
		return []*Asset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", canonical, err)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	assets := make([]*Asset, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name()), needle) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // removed between readdir and stat
		}
		assets = append(assets, r.buildAsset(canonical, entry.Name(), info))
	}

	sort.SliceStable(assets, func(i, j int) bool {
		if !assets[i].UploadedAt.Equal(assets[j].UploadedAt) {
			return assets[i].UploadedAt.After(assets[j].UploadedAt)
		}
		return assets[i].Filename < assets[j].Filename
	})
	return assets, nil
}

// Upload stores the incoming stream under a generated
// <unixMilli>-<sanitized-name> filename inside folder, creating the
// folder if needed. A name that collides with an existing file gets a
// short random suffix, so two uploads in the same millisecond still land
// on distinct paths. A failed write leaves no partial file behind.
func (r *AssetRepository) Upload(folder, originalName string, src io.Reader, declaredSize int64) (*Asset, error) {
	if declaredSize > r.maxBytes {
		return nil, ErrPayloadTooLarge
	}
	absDir, canonicalFolder, err := r.resolver.Resolve(folder)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder %q: %w", canonicalFolder, err)
	}

	base := SanitizeSegment(filepath.Base(originalName))
	if base == "" {
		base = fallbackBaseName
	}
	filename := fmt.Sprintf("%d-%s", r.now().UnixMilli(), base)
	absPath := filepath.Join(absDir, filename)
	if err := r.resolver.EnsureWithinRoot(absPath); err != nil {
		return nil, err
	}
	if _, err := os.Lstat(absPath); err == nil {
		filename = disambiguate(filename)
		absPath = filepath.Join(absDir, filename)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create file %q: %w", filename, err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		dst.Close()
		os.Remove(absPath)
		return nil, fmt.Errorf("write file %q: %w", filename, err)
	}
	if written > r.maxBytes {
		dst.Close()
		os.Remove(absPath)
		return nil, ErrPayloadTooLarge
	}
	if err := dst.Close(); err != nil {
		os.Remove(absPath)
		return nil, fmt.Errorf("flush file %q: %w", filename, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat uploaded file %q: %w", filename, err)
	}
	return r.buildAsset(canonicalFolder, filename, info), nil
}

// Rename moves oldRel to newName, optionally into newFolder (nil keeps
// the current folder). The extension is locked: a bare new name inherits
// the old extension, a different one is rejected. Renaming onto the
// current path is an idempotent no-op; an occupied target is a conflict.
func (r *AssetRepository) Rename(oldRel, newName string, newFolder *string) (*Asset, error) {
	srcAbs, srcRel, err := r.resolver.Resolve(oldRel)
	if err != nil {
		return nil, err
	}
	if srcRel == "" {
		return nil, ErrInvalidPath
	}
	srcInfo, err := os.Stat(srcAbs)
	if err != nil || !srcInfo.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	name := SanitizeSegment(filepath.Base(newName))
	if name == "" {
		return nil, ErrInvalidPath
	}
	oldExt := path.Ext(srcRel)
	newExt := path.Ext(name)
	if newExt == "" {
		name += oldExt
	} else if !strings.EqualFold(newExt, oldExt) {
		return nil, ErrExtensionMismatch
	}

	folder := path.Dir(srcRel)
	if folder == "." {
		folder = ""
	}
	if newFolder != nil {
		folder = *newFolder
	}
	dstDirAbs, dstFolderRel, err := r.resolver.Resolve(folder)
	if err != nil {
		return nil, err
	}
	dstAbs := filepath.Join(dstDirAbs, name)
	if err := r.resolver.EnsureWithinRoot(dstAbs); err != nil {
		return nil, err
	}
	dstRel := path.Join(dstFolderRel, name)

	if dstRel == srcRel {
		return r.buildAsset(dstFolderRel, name, srcInfo), nil
	}

	// lock source and destination so two renames cannot slip through the
	// existence check into the same target
	unlock := r.resolver.LockPaths(srcAbs, dstAbs)
	defer unlock()

	if err := os.MkdirAll(dstDirAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create target folder %q: %w", dstFolderRel, err)
	}
	if _, err := os.Lstat(dstAbs); err == nil {
		return nil, ErrConflict
	}
	if err := os.Rename(srcAbs, dstAbs); err != nil {
		return nil, fmt.Errorf("rename %q to %q: %w", srcRel, dstRel, err)
	}

	info, err := os.Stat(dstAbs)
	if err != nil {
		return nil, fmt.Errorf("stat renamed file %q: %w", dstRel, err)
	}
	return r.buildAsset(dstFolderRel, name, info), nil
}

// Delete unlinks the file at rel. No reference synchronization happens
// here: dangling embedded references are tolerated on render.
func (r *AssetRepository) Delete(rel string) error {
	abs, canonical, err := r.resolver.Resolve(rel)
	if err != nil {
		return err
	}
	if canonical == "" {
		return ErrInvalidPath
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return ErrNotFound
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("delete %q: %w", canonical, err)
	}
	return nil
}

func (r *AssetRepository) buildAsset(folder, filename string, info fs.FileInfo) *Asset {
	rel := path.Join(folder, filename)
	return &Asset{
		Path:       rel,
		Filename:   filename,
		Folder:     folder,
		Size:       info.Size(),
		Extension:  strings.TrimPrefix(path.Ext(filename), "."),
		UploadedAt: info.ModTime(),
		URL:        BuildURL(r.webPrefix, rel),
	}
}

func disambiguate(filename string) string {
	ext := path.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	return stem + "-" + uuid.NewString()[:8] + ext
}
