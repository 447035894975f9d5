package app

import (
	"bytes"
	"context"
	"fmt"

	"pattern-share/pkg/config"
	"pattern-share/pkg/logger"
	"pattern-share/pkg/moderation"
	"pattern-share/pkg/s3"
)

type objectDownloader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// LoadBlocklist builds the moderation filter from BLOCKLIST_PATH: the embedded
// list when empty, an S3 object for s3:// URIs, or a local file otherwise.
func LoadBlocklist(ctx context.Context, cfg *config.Config, log *logger.Logger) (*moderation.Filter, error) {
	newDownloader := func() (objectDownloader, error) {
		client, err := s3.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return loadBlocklist(ctx, cfg.BlocklistPath, newDownloader, log)
}

func loadBlocklist(ctx context.Context, location string, newDownloader func() (objectDownloader, error), log *logger.Logger) (*moderation.Filter, error) {
	var (
		words  []string
		source string
		err    error
	)

	switch {
	case location == "":
		words = moderation.DefaultWordList()
		source = "embedded list"
	case s3.IsURI(location):
		words, err = downloadWordList(ctx, location, newDownloader)
		source = location
	default:
		words, err = moderation.LoadWordListFile(location)
		source = location
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blocklist from %s: %w", source, err)
	}

	filter := moderation.NewFilter(words)
	if filter.Len() == 0 {
		log.Warn("Blocklist %s is empty, moderation will accept all text", source)
	}
	log.Info("Loaded %d blocked terms from %s", filter.Len(), source)
	return filter, nil
}

func downloadWordList(ctx context.Context, location string, newDownloader func() (objectDownloader, error)) ([]string, error) {
	bucket, key, err := s3.ParseURI(location)
	if err != nil {
		return nil, err
	}

	downloader, err := newDownloader()
	if err != nil {
		return nil, err
	}

	data, err := downloader.Download(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return moderation.ParseWordList(bytes.NewReader(data))
}
