package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"libreria/internal/dto"
	"libreria/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var isbnPattern = regexp.MustCompile(`^\d{10}$|^\d{13}$`)

const metadataCachePrefix = "metadata:"

// MetadataService resolves book metadata for an ISBN through the scraper
// sidecar, with a Redis cache in front and a circuit breaker around the
// sidecar call. Failures are non-fatal for callers: they degrade to manual
// entry.
type MetadataService interface {
	Buscar(ctx context.Context, isbn string) (*dto.MetadataResponse, error)
	// Prefetch warms the cache for one ISBN. "Not found" is a normal outcome.
	Prefetch(ctx context.Context, isbn string) error
}

type metadataService struct {
	client   *infra.MetadataClient
	cb       *infra.CircuitBreaker
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewMetadataService(client *infra.MetadataClient, cb *infra.CircuitBreaker, rdb *redis.Client, cacheTTL time.Duration) MetadataService {
	return &metadataService{client: client, cb: cb, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *metadataService) Buscar(ctx context.Context, isbn string) (*dto.MetadataResponse, error) {
	if !isbnPattern.MatchString(isbn) {
		return nil, ErrFormatoInvalido
	}

	cacheKey := metadataCachePrefix + isbn
	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp dto.MetadataResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return &resp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Msg("metadata: cache no disponible, consultando sidecar")
	}

	var result *infra.MetadataResult
	err := s.cb.Execute(func() error {
		var fetchErr error
		result, fetchErr = s.client.Fetch(ctx, isbn)
		return fetchErr
	})
	if err != nil {
		log.Error().Err(err).Str("isbn", isbn).Msg("metadata: sidecar no disponible")
		return nil, ErrUpstreamNoDisponible
	}
	if result == nil {
		return nil, ErrNoEncontrado
	}

	resp := &dto.MetadataResponse{
		Titulo:    result.Titulo,
		Autor:     result.Autor,
		Editorial: result.Editorial,
		Precio:    result.Precio,
		Fuente:    result.Fuente,
		URL:       result.URL,
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("isbn", isbn).Msg("metadata: no se pudo cachear el resultado")
		}
	}
	return resp, nil
}

func (s *metadataService) Prefetch(ctx context.Context, isbn string) error {
	_, err := s.Buscar(ctx, isbn)
	if errors.Is(err, ErrNoEncontrado) || errors.Is(err, ErrFormatoInvalido) {
		return nil
	}
	return err
}
