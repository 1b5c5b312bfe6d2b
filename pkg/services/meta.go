package services

import (
	"context"
	"time"

	"video-meta-relay/pkg/interfaces"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/types"
)

// MetaService serves video metadata lookups.
type MetaService struct {
	log       *logging.Logger
	params    interfaces.ParamSource
	fetcher   interfaces.MetadataFetcher
	extractor interfaces.MetadataExtractor
}

// NewMetaService creates a new metadata service.
func NewMetaService(
	log *logging.Logger,
	params interfaces.ParamSource,
	fetcher interfaces.MetadataFetcher,
	extractor interfaces.MetadataExtractor,
) *MetaService {
	return &MetaService{
		log:       log.WithComponent("meta-service"),
		params:    params,
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// Lookup resolves the cleaned metadata for videoID.
//
// The embed suffix is resolved first and never fails the lookup. Backend
// errors are returned as-is and carry their apperr kind.
func (s *MetaService) Lookup(ctx context.Context, videoID string) (types.CleanedMetadata, error) {
	start := time.Now()
	log := s.log.With("video_id", videoID)

	suffix := s.params.Suffix(ctx)
	log.Debug("resolved embed params", "suffix", suffix)

	raw, err := s.fetcher.FetchVideo(ctx, videoID)
	if err != nil {
		log.Error("metadata fetch failed", "error", err)
		return types.CleanedMetadata{}, err
	}

	meta := s.extractor.Extract(raw, videoID, suffix)
	log.WithDuration(time.Since(start)).Debug("metadata extracted", "iframelink", meta.IframeLink)

	return meta, nil
}
