package media

// RenameAssetRequest renames and/or moves one asset. NewFolder nil keeps
// the current folder; an empty string moves the asset to the root.
type RenameAssetRequest struct {
	Path      string  `json:"path" binding:"required" validate:"required"`
	NewName   string  `json:"new_name" binding:"required" validate:"required,max=120"`
	NewFolder *string `json:"new_folder" validate:"omitempty,max=255"`
}

type CreateFolderRequest struct {
	Parent string `json:"parent" validate:"omitempty,max=255"`
	Name   string `json:"name" binding:"required" validate:"required,max=120"`
}

type RenameFolderRequest struct {
	Path    string `json:"path" binding:"required" validate:"required,max=255"`
	NewName string `json:"new_name" binding:"required" validate:"required,max=120"`
}
