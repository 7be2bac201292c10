package media

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom/internal/pkg/response"
	"newsroom/internal/pkg/validator"
)

// Handler translates HTTP requests into media service calls. It owns no
// business rules; every decision lives in the service and repositories.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the assets, subfolders, tree and breadcrumbs for a folder.
func (h *Handler) List(c *gin.Context) {
	listing, err := h.service.ListAssets(c.Query("folder"), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}

// Upload stores a multipart file into the requested folder.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "file could not be read")
		return
	}
	defer src.Close()

	asset, err := h.service.UploadAsset(c.PostForm("folder"), fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, asset)
}

// Rename renames and/or moves an asset, synchronizing article references.
func (h *Handler) Rename(c *gin.Context) {
	var req RenameAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "validation failed", fields)
		return
	}
	asset, err := h.service.RenameAsset(c.Request.Context(), req.Path, req.NewName, req.NewFolder)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, asset)
}

// Delete removes an asset. The path arrives as a wildcard URL suffix.
func (h *Handler) Delete(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	if rel == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_PATH", "file path is required")
		return
	}
	if err := h.service.DeleteAsset(rel); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": rel})
}

// CreateFolder makes a new directory under the given parent.
func (h *Handler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "validation failed", fields)
		return
	}
	folder, err := h.service.CreateFolder(req.Parent, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, folder)
}

// RenameFolder renames a directory in place.
func (h *Handler) RenameFolder(c *gin.Context) {
	var req RenameFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "validation failed", fields)
		return
	}
	folder, err := h.service.RenameFolder(req.Path, req.NewName)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, folder)
}

// fail maps media errors onto HTTP statuses. None of these are retried:
// an invalid path or a conflict will not succeed on a second attempt.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPath):
		response.Error(c, http.StatusBadRequest, "INVALID_PATH", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrExtensionMismatch):
		response.Error(c, http.StatusBadRequest, "EXTENSION_MISMATCH", err.Error())
	case errors.Is(err, ErrInvalidOperation):
		response.Error(c, http.StatusBadRequest, "INVALID_OPERATION", err.Error())
	case errors.Is(err, ErrPayloadTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "IO_ERROR", "media operation failed")
	}
}
