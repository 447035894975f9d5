package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pattern-share/pkg/config"
	"pattern-share/pkg/database"
	"pattern-share/pkg/logger"
	patternApp "pattern-share/services/pattern/internal/app"
	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/repo"
	"pattern-share/services/pattern/internal/repo/document"
	"pattern-share/services/pattern/internal/repo/persistent"
	"pattern-share/services/pattern/internal/usecase"
)

var samplePatterns = []entity.PatternInput{
	{
		PatternURL:   "https://cdn.example.com/patterns/granny-square-blanket.pdf",
		PatternName:  "Granny Square Blanket",
		AuthorName:   "Ada Loop",
		Description:  "A scrap-friendly blanket joined as you go.",
		Slug:         "granny-square-blanket",
		ThumbnailURL: "https://cdn.example.com/thumbs/granny-square-blanket.webp",
	},
	{
		PatternURL:   "https://cdn.example.com/patterns/cabled-beanie.docx",
		PatternName:  "Cabled Beanie",
		AuthorName:   "Bea Purl",
		Description:  "Worsted weight hat with a twisted rib brim.",
		Slug:         "cabled-beanie",
		ThumbnailURL: "https://cdn.example.com/thumbs/cabled-beanie.jpg",
	},
	{
		PatternURL:  "https://cdn.example.com/patterns/toe-up-socks.txt",
		PatternName: "Toe-Up Socks",
		AuthorName:  "Cy Heel",
		Description: "Fingering weight socks with an afterthought heel.",
		Slug:        "toe-up-socks",
	},
	{
		PatternURL:   "https://cdn.example.com/patterns/lace-shawl.pdf",
		PatternName:  "Seafoam Lace Shawl",
		AuthorName:   "Dee Yarnover",
		Description:  "Top-down triangular shawl in laceweight mohair.",
		Slug:         "seafoam-lace-shawl",
		ThumbnailURL: "https://cdn.example.com/thumbs/lace-shawl.png",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	filter, err := patternApp.LoadBlocklist(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to load blocklist: %v", err)
		panic(err)
	}

	patternRepo, closeStore, err := openStore(cfg)
	if err != nil {
		log.Error("Failed to open store: %v", err)
		panic(err)
	}
	defer closeStore()

	patternUseCase := usecase.NewPatternUseCase(patternRepo, filter, log)

	if err := seedDatabase(ctx, patternUseCase, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func openStore(cfg *config.Config) (repo.PatternRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMongo {
		db, err := database.NewMongoDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return document.NewPatternRepository(db), func() { database.CloseMongo(context.Background(), db) }, nil
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return persistent.NewPatternRepository(db), func() { database.ClosePostgres(db) }, nil
}

// seedDatabase uploads every sample through the use case; samples that already exist are skipped.
func seedDatabase(ctx context.Context, patternUseCase usecase.PatternUseCase, log *logger.Logger) error {
	for _, input := range samplePatterns {
		pattern, err := patternUseCase.UploadPattern(ctx, input)
		if errors.Is(err, entity.ErrDuplicateSlug) {
			log.Info("Pattern %s already exists, skipping", input.Slug)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", input.Slug, err)
		}
		log.Info("Seeded pattern %s (%s)", pattern.Slug, pattern.ID)
	}
	return nil
}
