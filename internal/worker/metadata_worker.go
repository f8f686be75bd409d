package worker

// metadata_worker.go
// Warms the ISBN metadata cache in the background so the lookup is instant
// when staff get around to reviewing a faltante.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// MetadataJobPayload is the job envelope sent to QueueMetadata.
type MetadataJobPayload struct {
	ISBN string `json:"isbn"`
}

// MetadataPrefetcher is implemented by the metadata service; kept as a local
// interface so the worker package stays free of service imports.
type MetadataPrefetcher interface {
	Prefetch(ctx context.Context, isbn string) error
}

type MetadataWorker struct {
	prefetcher MetadataPrefetcher
}

func NewMetadataWorker(prefetcher MetadataPrefetcher) *MetadataWorker {
	return &MetadataWorker{prefetcher: prefetcher}
}

// Process resolves one ISBN through the normal lookup path, which populates
// the cache as a side effect. "Not found" is a normal outcome, not a failure.
func (w *MetadataWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload MetadataJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("metadata_worker: invalid payload: %w", err)
	}
	if payload.ISBN == "" {
		log.Warn().Msg("metadata_worker: empty isbn — skipping")
		return nil
	}

	if err := w.prefetcher.Prefetch(ctx, payload.ISBN); err != nil {
		return fmt.Errorf("metadata_worker: prefetch %s: %w", payload.ISBN, err)
	}
	log.Info().Str("isbn", payload.ISBN).Msg("metadata_worker: cache warmed")
	return nil
}
