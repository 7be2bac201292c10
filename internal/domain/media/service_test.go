package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRewriter struct {
	mock.Mock
}

func (m *MockRewriter) Rewrite(ctx context.Context, old, updated Identity) {
	m.Called(ctx, old, updated)
}

func newTestService(t *testing.T) (*Service, *MockRewriter, *PathResolver) {
	t.Helper()
	resolver := newTestResolver(t)
	rewriter := new(MockRewriter)
	svc := NewService(
		resolver,
		NewFolderTree(resolver),
		NewAssetRepository(resolver, testWebPrefix, DefaultMaxUploadBytes),
		NewFolderRepository(resolver),
		rewriter,
		testWebPrefix,
	)
	return svc, rewriter, resolver
}

func TestServiceListAssets(t *testing.T) {
	svc, _, resolver := newTestService(t)
	writeTestFile(t, resolver, "articles/2024/photo.jpg", "x")
	_, err := svc.CreateFolder("articles/2024", "drafts")
	require.NoError(t, err)

	listing, err := svc.ListAssets("articles/2024", "")
	require.NoError(t, err)

	assert.Equal(t, "articles/2024", listing.CurrentFolder)
	require.Len(t, listing.Assets, 1)
	assert.Equal(t, "photo.jpg", listing.Assets[0].Filename)
	require.Len(t, listing.Folders, 1)
	assert.Equal(t, "articles/2024/drafts", listing.Folders[0].Path)
	require.Len(t, listing.Breadcrumbs, 2)
	assert.Equal(t, "articles", listing.Breadcrumbs[0].Path)
	assert.Equal(t, "media", listing.Tree.Name)
}

func TestServiceListMaterializesFolder(t *testing.T) {
	svc, _, resolver := newTestService(t)

	listing, err := svc.ListAssets("brand/new", "")
	require.NoError(t, err)
	assert.Empty(t, listing.Assets)

	abs, _, _ := resolver.Resolve("brand/new")
	assert.DirExists(t, abs)
}

func TestServiceRenameSynchronizesReferences(t *testing.T) {
	svc, rewriter, resolver := newTestService(t)
	writeTestFile(t, resolver, "articles/old.jpg", "data")

	rewriter.On("Rewrite", mock.Anything,
		Identity{
			Path:     "articles/old.jpg",
			URL:      "/uploads/media/articles/old.jpg",
			Filename: "old.jpg",
		},
		Identity{
			Path:     "articles/new.jpg",
			URL:      "/uploads/media/articles/new.jpg",
			Filename: "new.jpg",
		},
	).Return()

	asset, err := svc.RenameAsset(context.Background(), "articles/old.jpg", "new", nil)
	require.NoError(t, err)
	assert.Equal(t, "articles/new.jpg", asset.Path)
	rewriter.AssertExpectations(t)
}

func TestServiceRenameNoOpSkipsSync(t *testing.T) {
	svc, rewriter, resolver := newTestService(t)
	writeTestFile(t, resolver, "articles/photo.jpg", "data")

	asset, err := svc.RenameAsset(context.Background(), "articles/photo.jpg", "photo.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, "articles/photo.jpg", asset.Path)
	rewriter.AssertNotCalled(t, "Rewrite", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceRenameFailureSkipsSync(t *testing.T) {
	svc, rewriter, resolver := newTestService(t)
	writeTestFile(t, resolver, "a.jpg", "a")
	writeTestFile(t, resolver, "b.jpg", "b")

	_, err := svc.RenameAsset(context.Background(), "a.jpg", "b", nil)
	assert.ErrorIs(t, err, ErrConflict)
	rewriter.AssertNotCalled(t, "Rewrite", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceDeleteDoesNotSync(t *testing.T) {
	svc, rewriter, resolver := newTestService(t)
	writeTestFile(t, resolver, "articles/photo.jpg", "data")

	require.NoError(t, svc.DeleteAsset("articles/photo.jpg"))
	rewriter.AssertNotCalled(t, "Rewrite", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceUploadAndListRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	asset, err := svc.UploadAsset("gallery", "pic one.png", strings.NewReader("png"), 3)
	require.NoError(t, err)

	listing, err := svc.ListAssets("gallery", "pic_one")
	require.NoError(t, err)
	require.Len(t, listing.Assets, 1)
	assert.Equal(t, asset.Path, listing.Assets[0].Path)
}
