package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FrankoSolomun/movie-watchlist/internal/tmdb"
)

const (
	catalogListCacheTTL   = 5 * time.Minute
	catalogDetailCacheTTL = 30 * time.Minute
	catalogGenreCacheTTL  = 24 * time.Hour

	maxRecommendations = 6
)

// CatalogService fronts the external movie catalog with read-through caching.
// Watchlist and comment reads always hit PostgreSQL fresh; only upstream
// catalog responses are cached.
type CatalogService struct {
	tmdb  *tmdb.Client
	redis *redis.Client
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(client *tmdb.Client, rdb *redis.Client) *CatalogService {
	return &CatalogService{tmdb: client, redis: rdb}
}

// Search searches the catalog by query and/or genre.
func (s *CatalogService) Search(query string, page, genreID int) (*tmdb.SearchResponse, error) {
	cacheKey := fmt.Sprintf("catalog:search:%s:%d:%d", query, page, genreID)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result tmdb.SearchResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	result, err := s.tmdb.SearchMovies(query, page, genreID)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	s.cacheJSON(cacheKey, result, catalogListCacheTTL)
	return result, nil
}

// Popular returns the popular listing.
func (s *CatalogService) Popular(page int) (*tmdb.SearchResponse, error) {
	cacheKey := fmt.Sprintf("catalog:popular:%d", page)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result tmdb.SearchResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			return &result, nil
		}
	}

	result, err := s.tmdb.PopularMovies(page)
	if err != nil {
		return nil, fmt.Errorf("catalog popular listing failed: %w", err)
	}

	s.cacheJSON(cacheKey, result, catalogListCacheTTL)
	return result, nil
}

// TopRated returns the top-rated listing.
func (s *CatalogService) TopRated(page int) (*tmdb.SearchResponse, error) {
	cacheKey := fmt.Sprintf("catalog:top_rated:%d", page)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result tmdb.SearchResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			return &result, nil
		}
	}

	result, err := s.tmdb.TopRatedMovies(page)
	if err != nil {
		return nil, fmt.Errorf("catalog top-rated listing failed: %w", err)
	}

	s.cacheJSON(cacheKey, result, catalogListCacheTTL)
	return result, nil
}

// ByGenre returns the discover listing for a genre.
func (s *CatalogService) ByGenre(genreID, page int) (*tmdb.SearchResponse, error) {
	cacheKey := fmt.Sprintf("catalog:genre:%d:%d", genreID, page)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result tmdb.SearchResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			return &result, nil
		}
	}

	result, err := s.tmdb.MoviesByGenre(genreID, page)
	if err != nil {
		return nil, fmt.Errorf("catalog genre listing failed: %w", err)
	}

	s.cacheJSON(cacheKey, result, catalogListCacheTTL)
	return result, nil
}

// Genres returns all catalog genres.
func (s *CatalogService) Genres() ([]tmdb.Genre, error) {
	cacheKey := "catalog:genres"
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var genres []tmdb.Genre
		if json.Unmarshal([]byte(cached), &genres) == nil {
			return genres, nil
		}
	}

	genres, err := s.tmdb.GetGenres()
	if err != nil {
		return nil, fmt.Errorf("catalog genres failed: %w", err)
	}

	s.cacheJSON(cacheKey, genres, catalogGenreCacheTTL)
	return genres, nil
}

// Detail returns detailed info for one movie.
func (s *CatalogService) Detail(movieID int) (*tmdb.MovieDetail, error) {
	cacheKey := fmt.Sprintf("catalog:detail:%d", movieID)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var detail tmdb.MovieDetail
		if json.Unmarshal([]byte(cached), &detail) == nil {
			return &detail, nil
		}
	}

	detail, err := s.tmdb.GetMovieDetail(movieID)
	if err != nil {
		return nil, fmt.Errorf("catalog detail failed: %w", err)
	}

	s.cacheJSON(cacheKey, detail, catalogDetailCacheTTL)
	return detail, nil
}

// Recommendations returns top-rated movies minus the excluded IDs, capped at
// a handful of suggestions.
func (s *CatalogService) Recommendations(excludeIDs []int) (*tmdb.SearchResponse, error) {
	result, err := s.TopRated(1)
	if err != nil {
		return nil, err
	}

	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	picks := make([]tmdb.Movie, 0, maxRecommendations)
	for _, m := range result.Results {
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		picks = append(picks, m)
		if len(picks) == maxRecommendations {
			break
		}
	}

	return &tmdb.SearchResponse{
		Page:         1,
		Results:      picks,
		TotalPages:   1,
		TotalResults: len(picks),
	}, nil
}

// ---- Redis helpers ----

func (s *CatalogService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *CatalogService) cacheJSON(key string, v interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
