package media

import "time"

// Asset represents one stored file inside the media root.
// Path is the unique key; everything else is derived from the filesystem.
type Asset struct {
	Path       string    `json:"path"`
	Filename   string    `json:"filename"`
	Folder     string    `json:"folder"`
	Size       int64     `json:"size"`
	Extension  string    `json:"extension"`
	UploadedAt time.Time `json:"uploaded_at"`
	URL        string    `json:"url"`
}

// Folder is a directory node under the media root. Children are sorted by name.
type Folder struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Children []*Folder `json:"children"`
}

// Breadcrumb is one step of the navigation trail for the current folder.
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Identity is an asset's address as embedded content sees it:
// relative path, derived URL and bare filename.
type Identity struct {
	Path     string
	URL      string
	Filename string
}

// Listing is the full payload the browse screen renders.
type Listing struct {
	Assets        []*Asset     `json:"assets"`
	Folders       []*Folder    `json:"folders"`
	Tree          *Folder      `json:"tree"`
	CurrentFolder string       `json:"current_folder"`
	Breadcrumbs   []Breadcrumb `json:"breadcrumbs"`
}
