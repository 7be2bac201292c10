package article

import (
	"time"

	"gorm.io/datatypes"
)

// Article is the content store row the media core collaborates with.
// The media side only ever reads and rewrites the Images payload; the
// remaining columns belong to the editorial side.
type Article struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	Header    string         `gorm:"column:header" json:"header"`
	Summary   string         `gorm:"column:summary" json:"summary"`
	Category  string         `gorm:"column:category;index" json:"category"`
	Body      string         `gorm:"column:body" json:"body"`
	Images    datatypes.JSON `gorm:"column:images" json:"images"`
	Writer    string         `gorm:"column:writer" json:"writer"`
	Status    string         `gorm:"column:status;index" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

// ImageRef is the projection returned by the reference pre-filter query:
// just the row id and its raw images payload.
type ImageRef struct {
	ID     string         `gorm:"column:id"`
	Images datatypes.JSON `gorm:"column:images"`
}
