package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"newsroom/internal/config"
	"newsroom/internal/database"
	"newsroom/internal/domain/article"
	"newsroom/internal/domain/media"
	"newsroom/internal/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&article.Article{}); err != nil {
		log.Fatal(err)
	}

	resolver, err := media.NewPathResolver(cfg.MediaRoot)
	if err != nil {
		log.Fatal(err)
	}

	articleRepo := article.NewRepository(db)

	tree := media.NewFolderTree(resolver)
	assets := media.NewAssetRepository(resolver, cfg.MediaWebPrefix, cfg.MaxUploadBytes)
	folders := media.NewFolderRepository(resolver)
	synchronizer := media.NewSynchronizer(articleRepo)

	mediaService := media.NewService(resolver, tree, assets, folders, synchronizer, cfg.MediaWebPrefix)
	mediaHandler := media.NewHandler(mediaService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// the derived asset URLs resolve against this static mount
	r.Static(cfg.MediaWebPrefix, resolver.Root())

	v1 := r.Group("/api/v1")
	{
		media.RegisterRoutes(v1, mediaHandler)
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
