package media

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"

	"newsroom/internal/domain/article"
)

// ArticleStore is the narrow slice of the content store the media core
// consumes. The media core never reads article bodies, only the images
// payload exposed here.
type ArticleStore interface {
	FindReferencingImageLike(ctx context.Context, patterns []string) ([]article.ImageRef, error)
	UpdateImages(ctx context.Context, id string, images datatypes.JSON, updatedAt time.Time) error
}

// Synchronizer rewrites embedded references inside article images
// payloads after an asset's address changed. It is strictly best-effort:
// the filesystem rename already happened and is the source of truth, so
// every failure here is logged and swallowed, never propagated.
type Synchronizer struct {
	store ArticleStore
}

func NewSynchronizer(store ArticleStore) *Synchronizer {
	return &Synchronizer{store: store}
}

// Rewrite replaces every occurrence of the old identity with the new one
// across all articles whose images payload textually matches the old
// path or URL. Rows are only persisted when an entry actually changed.
func (s *Synchronizer) Rewrite(ctx context.Context, old, updated Identity) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("media_sync_panic old=%q new=%q panic=%v", old.Path, updated.Path, rec)
		}
	}()

	patterns := make([]string, 0, 2)
	if old.URL != "" {
		patterns = append(patterns, "%"+old.URL+"%")
	}
	if old.Path != "" {
		patterns = append(patterns, "%"+old.Path+"%")
	}
	if len(patterns) == 0 {
		return
	}

	rows, err := s.store.FindReferencingImageLike(ctx, patterns)
	if err != nil {
		log.Printf("media_sync_error stage=query old=%q err=%q", old.Path, err.Error())
		return
	}

	now := time.Now()
	for _, row := range rows {
		if len(row.Images) == 0 {
			continue
		}
		var refs []EmbeddedReference
		if err := json.Unmarshal(row.Images, &refs); err != nil {
			// not an array of references, leave the row alone
			continue
		}

		changed := false
		for i := range refs {
			if refs[i].rewrite(old, updated) {
				changed = true
			}
		}
		if !changed {
			continue
		}

		payload, err := json.Marshal(refs)
		if err != nil {
			log.Printf("media_sync_error stage=encode article=%s err=%q", row.ID, err.Error())
			continue
		}
		if err := s.store.UpdateImages(ctx, row.ID, payload, now); err != nil {
			log.Printf("media_sync_error stage=update article=%s err=%q", row.ID, err.Error())
		}
	}
}
