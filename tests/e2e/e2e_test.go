package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"newsroom/internal/database"
	"newsroom/internal/domain/article"
	"newsroom/internal/domain/media"
	"newsroom/internal/middleware"
)

const webPrefix = "/uploads/media"

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type E2ETestSuite struct {
	router   *gin.Engine
	articles article.Repository
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&article.Article{}))

	resolver, err := media.NewPathResolver(t.TempDir())
	require.NoError(t, err)

	articleRepo := article.NewRepository(db)
	tree := media.NewFolderTree(resolver)
	assets := media.NewAssetRepository(resolver, webPrefix, media.DefaultMaxUploadBytes)
	folders := media.NewFolderRepository(resolver)
	synchronizer := media.NewSynchronizer(articleRepo)
	service := media.NewService(resolver, tree, assets, folders, synchronizer, webPrefix)

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorLogger())

	v1 := router.Group("/api/v1")
	media.RegisterRoutes(v1, media.NewHandler(service))

	return &E2ETestSuite{router: router, articles: articleRepo}
}

func (s *E2ETestSuite) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

func (s *E2ETestSuite) upload(t *testing.T, folder, filename, content string) media.Asset {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", folder))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var asset media.Asset
	require.NoError(t, json.Unmarshal(resp.Data, &asset))
	return asset
}

func TestMediaLifecycle(t *testing.T) {
	s := setupTestSuite(t)

	// upload into a folder that does not exist yet
	asset := s.upload(t, "articles", "City View.jpg", "jpeg-bytes")
	assert.Equal(t, "articles", asset.Folder)
	assert.Equal(t, "jpg", asset.Extension)

	// it shows up in the listing with tree and breadcrumbs
	w, resp := s.do(t, http.MethodGet, "/api/v1/media?folder=articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing media.Listing
	require.NoError(t, json.Unmarshal(resp.Data, &listing))
	require.Len(t, listing.Assets, 1)
	assert.Equal(t, asset.Path, listing.Assets[0].Path)
	assert.Equal(t, "articles", listing.CurrentFolder)
	require.Len(t, listing.Breadcrumbs, 1)

	// search filter
	w, resp = s.do(t, http.MethodGet, "/api/v1/media?folder=articles&search=zzz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &listing))
	assert.Empty(t, listing.Assets)

	// delete, then a second delete 404s
	w, _ = s.do(t, http.MethodDelete, "/api/v1/media/assets/"+asset.Path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = s.do(t, http.MethodDelete, "/api/v1/media/assets/"+asset.Path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestRenamePropagatesArticleReferences(t *testing.T) {
	s := setupTestSuite(t)

	asset := s.upload(t, "articles", "old.jpg", "jpeg-bytes")

	now := time.Now()
	images := fmt.Sprintf(`[{"path":%q,"url":%q,"filename":%q,"title":"Keep me"}]`,
		asset.Path, asset.URL, asset.Filename)
	require.NoError(t, s.articles.Create(context.Background(), &article.Article{
		ID:        "1001",
		Header:    "Referencing article",
		Images:    datatypes.JSON(images),
		Status:    "visible",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	w, resp := s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{
		"path":     asset.Path,
		"new_name": "new",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %v", resp.Error)

	var renamed media.Asset
	require.NoError(t, json.Unmarshal(resp.Data, &renamed))
	assert.Equal(t, "articles/new.jpg", renamed.Path)

	stored, err := s.articles.GetByID(context.Background(), "1001")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(stored.Images, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "articles/new.jpg", entries[0]["path"])
	assert.Equal(t, webPrefix+"/articles/new.jpg", entries[0]["url"])
	assert.Equal(t, "new.jpg", entries[0]["filename"])
	assert.Equal(t, "Keep me", entries[0]["title"])
}

func TestRenameConflictAndExtensionLock(t *testing.T) {
	s := setupTestSuite(t)

	a := s.upload(t, "gallery", "a.jpg", "aa")
	b := s.upload(t, "gallery", "b.jpg", "bb")

	// strip the generated timestamp prefix by renaming to fixed names
	w, resp := s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{
		"path": a.Path, "new_name": "first",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{
		"path": b.Path, "new_name": "second",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{
		"path": "gallery/first.jpg", "new_name": "second",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	w, resp = s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{
		"path": "gallery/first.jpg", "new_name": "first.png",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EXTENSION_MISMATCH", resp.Error.Code)
}

func TestFolderEndpoints(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/media/folders", gin.H{
		"parent": "", "name": "2024",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var folder media.Folder
	require.NoError(t, json.Unmarshal(resp.Data, &folder))
	assert.Equal(t, "2024", folder.Path)

	w, resp = s.do(t, http.MethodPost, "/api/v1/media/folders", gin.H{
		"parent": "", "name": "2024",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	w, resp = s.do(t, http.MethodPut, "/api/v1/media/folders/rename", gin.H{
		"path": "2024", "new_name": "2025",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &folder))
	assert.Equal(t, "2025", folder.Path)

	// the root cannot be renamed; traversal collapses to the root
	w, resp = s.do(t, http.MethodPut, "/api/v1/media/folders/rename", gin.H{
		"path": "../..", "new_name": "hacked",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_OPERATION", resp.Error.Code)
}

func TestUploadValidation(t *testing.T) {
	s := setupTestSuite(t)

	// no file part at all
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing body fields on rename
	w2, resp := s.do(t, http.MethodPut, "/api/v1/media/assets/rename", gin.H{"path": "x.jpg"})
	require.Equal(t, http.StatusBadRequest, w2.Code)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}
