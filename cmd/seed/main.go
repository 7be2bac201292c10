package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"

	"newsroom/internal/config"
	"newsroom/internal/database"
	"newsroom/internal/domain/article"
	"newsroom/internal/domain/media"
)

// Seeds the content store with sample articles whose images payloads
// reference freshly stored media files, so reference synchronization can
// be exercised end to end against a local setup.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&article.Article{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM articles")

	resolver, err := media.NewPathResolver(cfg.MediaRoot)
	if err != nil {
		log.Fatal("Media root failed:", err)
	}
	assets := media.NewAssetRepository(resolver, cfg.MediaWebPrefix, cfg.MaxUploadBytes)

	log.Println("Storing sample media...")
	samples := []struct {
		folder string
		name   string
	}{
		{"articles", "city-council.jpg"},
		{"articles", "harbor-view.jpg"},
		{"documents", "press-release.pdf"},
	}

	stored := make([]*media.Asset, 0, len(samples))
	for _, s := range samples {
		asset, err := assets.Upload(s.folder, s.name, strings.NewReader("seed content for "+s.name), 64)
		if err != nil {
			log.Fatal("Seed upload failed:", err)
		}
		stored = append(stored, asset)
		log.Printf("seeded_media path=%s url=%s", asset.Path, asset.URL)
	}

	log.Println("Creating articles...")
	repo := article.NewRepository(db)
	now := time.Now()
	for i, asset := range stored {
		images := fmt.Sprintf(
			`[{"path":%q,"url":%q,"filename":%q,"title":"Seed image %d","alt":"seed"}]`,
			asset.Path, asset.URL, asset.Filename, i+1,
		)
		a := &article.Article{
			ID:        fmt.Sprintf("%d", now.UnixMilli()+int64(i)),
			Header:    fmt.Sprintf("Sample article %d", i+1),
			Summary:   "Seeded article referencing a stored media asset.",
			Category:  "local",
			Body:      "Lorem ipsum dolor sit amet.",
			Images:    datatypes.JSON(images),
			Writer:    "newsdesk",
			Status:    "visible",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(context.Background(), a); err != nil {
			log.Fatal("Seed article failed:", err)
		}
	}

	log.Println("Seed complete.")
}
