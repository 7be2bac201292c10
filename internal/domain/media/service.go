package media

import (
	"context"
	"io"
	"path"
)

// ReferenceRewriter is what the service needs from the synchronizer.
type ReferenceRewriter interface {
	Rewrite(ctx context.Context, old, updated Identity)
}

// Service is the composition root for the media library: it resolves and
// validates paths, performs the filesystem mutation, and keeps embedded
// article references in step after an asset changes address.
type Service struct {
	resolver  *PathResolver
	tree      *FolderTree
	assets    *AssetRepository
	folders   *FolderRepository
	rewriter  ReferenceRewriter
	webPrefix string
}

func NewService(
	resolver *PathResolver,
	tree *FolderTree,
	assets *AssetRepository,
	folders *FolderRepository,
	rewriter ReferenceRewriter,
	webPrefix string,
) *Service {
	return &Service{
		resolver:  resolver,
		tree:      tree,
		assets:    assets,
		folders:   folders,
		rewriter:  rewriter,
		webPrefix: webPrefix,
	}
}

// ListAssets returns everything the browse screen needs for one folder:
// its files (optionally filtered), its direct subfolders, the full
// navigation tree, and the breadcrumb trail. Requesting a folder
// materializes it if it does not exist yet.
func (s *Service) ListAssets(folder, search string) (*Listing, error) {
	_, current, err := s.tree.Ensure(folder)
	if err != nil {
		return nil, err
	}
	assets, err := s.assets.List(current, search)
	if err != nil {
		return nil, err
	}
	tree, err := s.tree.BuildTree("")
	if err != nil {
		return nil, err
	}
	node := findNode(tree, current)
	folders := []*Folder{}
	if node != nil {
		folders = node.Children
	}
	return &Listing{
		Assets:        assets,
		Folders:       folders,
		Tree:          tree,
		CurrentFolder: current,
		Breadcrumbs:   Breadcrumbs(current),
	}, nil
}

// UploadAsset stores the stream under folder and returns the new asset.
func (s *Service) UploadAsset(folder, originalName string, src io.Reader, size int64) (*Asset, error) {
	return s.assets.Upload(folder, originalName, src, size)
}

// DeleteAsset removes the file. Embedded references are left dangling on
// purpose; delete does not synchronize.
func (s *Service) DeleteAsset(rel string) error {
	return s.assets.Delete(rel)
}

// RenameAsset renames and/or moves an asset, then rewrites embedded
// article references from the old address to the new one. Reference
// rewriting is best-effort and never rolls back the completed rename.
func (s *Service) RenameAsset(ctx context.Context, rel, newName string, newFolder *string) (*Asset, error) {
	_, oldRel, err := s.resolver.Resolve(rel)
	if err != nil {
		return nil, err
	}
	asset, err := s.assets.Rename(rel, newName, newFolder)
	if err != nil {
		return nil, err
	}
	if asset.Path != oldRel {
		s.rewriter.Rewrite(ctx, s.identityFor(oldRel), s.identityFor(asset.Path))
	}
	return asset, nil
}

// CreateFolder makes a new directory under parent.
func (s *Service) CreateFolder(parent, name string) (*Folder, error) {
	return s.folders.Create(parent, name)
}

// RenameFolder renames a directory in place. References to descendant
// assets are not re-synchronized; see FolderRepository.Rename.
func (s *Service) RenameFolder(rel, newName string) (*Folder, error) {
	return s.folders.Rename(rel, newName)
}

func (s *Service) identityFor(rel string) Identity {
	return Identity{
		Path:     rel,
		URL:      BuildURL(s.webPrefix, rel),
		Filename: path.Base(rel),
	}
}

func findNode(node *Folder, rel string) *Folder {
	if node == nil {
		return nil
	}
	if node.Path == rel {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, rel); found != nil {
			return found
		}
	}
	return nil
}
