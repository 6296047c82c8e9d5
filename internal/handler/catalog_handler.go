package handler

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/FrankoSolomun/movie-watchlist/internal/service"
)

// CatalogHandler handles HTTP requests proxied to the external movie catalog.
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *CatalogHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-watchlist",
	})
}

// upstreamError reports a catalog failure without leaking upstream details.
func upstreamError(c fiber.Ctx, err error, msg string) error {
	slog.Error("catalog request failed", "error", err)
	return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: msg})
}

// Search searches the movie catalog.
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param q query string false "Search query"
// @Param page query int false "Page number" default(1)
// @Param genre query int false "TMDB genre ID"
// @Success 200 {object} tmdb.SearchResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/search [get]
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	page := fiber.Query(c, "page", 1)
	genreID := fiber.Query(c, "genre", 0)

	result, err := h.svc.Search(query, page, genreID)
	if err != nil {
		return upstreamError(c, err, "failed to search movies")
	}
	return c.JSON(result)
}

// Popular returns the popular movie listing.
// @Summary Popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} tmdb.SearchResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/popular [get]
func (h *CatalogHandler) Popular(c fiber.Ctx) error {
	result, err := h.svc.Popular(fiber.Query(c, "page", 1))
	if err != nil {
		return upstreamError(c, err, "failed to fetch popular movies")
	}
	return c.JSON(result)
}

// TopRated returns the top-rated movie listing.
// @Summary Top-rated movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} tmdb.SearchResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/top-rated [get]
func (h *CatalogHandler) TopRated(c fiber.Ctx) error {
	result, err := h.svc.TopRated(fiber.Query(c, "page", 1))
	if err != nil {
		return upstreamError(c, err, "failed to fetch top-rated movies")
	}
	return c.JSON(result)
}

// ByGenre returns movies for one genre.
// @Summary Movies by genre
// @Tags movies
// @Produce json
// @Param genreId path int true "TMDB genre ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} tmdb.SearchResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/genre/{genreId} [get]
func (h *CatalogHandler) ByGenre(c fiber.Ctx) error {
	genreID, err := strconv.Atoi(c.Params("genreId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid genre ID"})
	}

	result, err := h.svc.ByGenre(genreID, fiber.Query(c, "page", 1))
	if err != nil {
		return upstreamError(c, err, "failed to fetch movies for genre")
	}
	return c.JSON(result)
}

// Genres returns all catalog genres.
// @Summary List genres
// @Tags movies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} ErrorResponse
// @Router /movies/genres [get]
func (h *CatalogHandler) Genres(c fiber.Ctx) error {
	genres, err := h.svc.Genres()
	if err != nil {
		return upstreamError(c, err, "failed to fetch genres")
	}
	return c.JSON(fiber.Map{"genres": genres})
}

// Recommendations returns top-rated movies excluding the given IDs.
// @Summary Movie recommendations
// @Tags movies
// @Produce json
// @Param exclude query string false "Comma-separated TMDB movie IDs to exclude"
// @Success 200 {object} tmdb.SearchResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/recommendations [get]
func (h *CatalogHandler) Recommendations(c fiber.Ctx) error {
	var excludeIDs []int
	if raw := c.Query("exclude"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				excludeIDs = append(excludeIDs, id)
			}
		}
	}

	result, err := h.svc.Recommendations(excludeIDs)
	if err != nil {
		return upstreamError(c, err, "failed to fetch recommendations")
	}
	return c.JSON(result)
}

// Detail returns detailed info for one movie.
// @Summary Movie detail
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} tmdb.MovieDetail
// @Failure 502 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *CatalogHandler) Detail(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	detail, err := h.svc.Detail(movieID)
	if err != nil {
		return upstreamError(c, err, "failed to fetch movie details")
	}
	return c.JSON(detail)
}
