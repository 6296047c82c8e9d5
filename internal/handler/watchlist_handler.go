package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/FrankoSolomun/movie-watchlist/internal/middleware"
	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/service"
	"github.com/FrankoSolomun/movie-watchlist/internal/watch"
)

// WatchlistHandler handles HTTP requests for the watchlist.
type WatchlistHandler struct {
	svc *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// Add puts a movie on the caller's watchlist.
// @Summary Add movie to watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Success 201 {object} models.WatchlistEntry
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req models.AddWatchlistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.svc.Add(userID, req)
	if err != nil {
		slog.Error("failed to add to watchlist", "user_id", userID, "error", err)
		return respondError(c, err, "failed to add movie to watchlist")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// List returns the caller's full watchlist with derived statuses, or the
// three grouped views when ?grouped=true is set.
// @Summary List watchlist
// @Tags watchlist
// @Produce json
// @Param grouped query bool false "Return grouped views"
// @Success 200 {object} models.WatchlistResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	if fiber.Query(c, "grouped", false) {
		groups, err := h.svc.Grouped(userID)
		if err != nil {
			slog.Error("failed to group watchlist", "user_id", userID, "error", err)
			return respondError(c, err, "failed to retrieve watchlist")
		}
		return c.JSON(groups)
	}

	result, err := h.svc.List(userID)
	if err != nil {
		slog.Error("failed to list watchlist", "user_id", userID, "error", err)
		return respondError(c, err, "failed to retrieve watchlist")
	}
	return c.JSON(result)
}

// Upcoming returns the caller's scheduled movies, soonest first.
// @Summary List upcoming movies
// @Tags watchlist
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /watchlist/upcoming [get]
func (h *WatchlistHandler) Upcoming(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	entries, err := h.svc.Upcoming(userID)
	if err != nil {
		slog.Error("failed to list upcoming", "user_id", userID, "error", err)
		return respondError(c, err, "failed to retrieve upcoming movies")
	}
	return c.JSON(fiber.Map{"movies": entries})
}

// ByDate returns the movies watched on one calendar day.
// @Summary Movies watched on a day
// @Tags watchlist
// @Produce json
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /watchlist/by-date [get]
func (h *WatchlistHandler) ByDate(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	date := c.Query("date")

	entries, err := h.svc.WatchedOn(userID, date)
	if err != nil {
		return respondError(c, err, "failed to retrieve movies for date")
	}
	return c.JSON(fiber.Map{"date": date, "movies": entries})
}

// WatchedDates returns the distinct days with at least one watched movie.
// @Summary Watched calendar days
// @Tags watchlist
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /watchlist/watched-dates [get]
func (h *WatchlistHandler) WatchedDates(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	dates, err := h.svc.WatchedDates(userID)
	if err != nil {
		slog.Error("failed to list watched dates", "user_id", userID, "error", err)
		return respondError(c, err, "failed to retrieve watched dates")
	}
	return c.JSON(fiber.Map{"dates": dates})
}

// Schedule schedules a movie for a day or marks it watched; a future day
// schedules, today or a past day marks watched. The response message reflects
// which happened.
// @Summary Schedule or mark watched
// @Tags watchlist
// @Accept json
// @Produce json
// @Param movieId path int true "TMDB movie ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{movieId}/schedule [post]
func (h *WatchlistHandler) Schedule(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	var req models.SetWatchDateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.svc.SetWatchDate(userID, movieID, req.Date)
	if err != nil {
		return respondError(c, err, "failed to set watch date")
	}

	message := "movie marked as watched"
	if entry.Status == watch.StatusUpcoming {
		message = "movie scheduled"
	}
	return c.JSON(fiber.Map{"message": message, "movie": entry})
}

// Unmark resets a movie to unwatched with no date.
// @Summary Unmark watched
// @Tags watchlist
// @Produce json
// @Param movieId path int true "TMDB movie ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{movieId}/unmark [post]
func (h *WatchlistHandler) Unmark(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.Unmark(userID, movieID); err != nil {
		return respondError(c, err, "failed to unmark movie")
	}
	return c.JSON(fiber.Map{"message": "movie unmarked"})
}

// Rate sets or clears the rating on a watched movie.
// @Summary Rate a watched movie
// @Tags watchlist
// @Accept json
// @Produce json
// @Param movieId path int true "TMDB movie ID"
// @Success 200 {object} models.WatchlistEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{movieId}/rating [put]
func (h *WatchlistHandler) Rate(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	var req models.RateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.svc.Rate(userID, movieID, req.Rating)
	if err != nil {
		return respondError(c, err, "failed to update rating")
	}
	return c.JSON(entry)
}

// Remove deletes a movie from the caller's watchlist.
// @Summary Remove from watchlist
// @Tags watchlist
// @Produce json
// @Param movieId path int true "TMDB movie ID"
// @Success 200 {object} map[string]string
// @Router /watchlist/{movieId} [delete]
func (h *WatchlistHandler) Remove(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.Remove(userID, movieID); err != nil {
		slog.Error("failed to remove from watchlist", "user_id", userID, "movie_id", movieID, "error", err)
		return respondError(c, err, "failed to remove movie from watchlist")
	}
	return c.JSON(fiber.Map{"message": "movie removed from watchlist"})
}
