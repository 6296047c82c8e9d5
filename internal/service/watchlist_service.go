package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
	"github.com/FrankoSolomun/movie-watchlist/internal/watch"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// WatchlistService handles business logic for watchlist entries. The
// reference day used for status classification comes from the injected clock,
// normalized to local midnight, so every read in one request sees the same
// "today".
type WatchlistService struct {
	repo *repository.WatchlistRepository
	loc  *time.Location
	now  func() time.Time
}

// NewWatchlistService creates a new WatchlistService classifying dates in the
// given location.
func NewWatchlistService(repo *repository.WatchlistRepository, loc *time.Location) *WatchlistService {
	if loc == nil {
		loc = time.Local
	}
	return &WatchlistService{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (s *WatchlistService) today() time.Time {
	return watch.DayOf(s.now().In(s.loc))
}

// Add puts a movie on the user's list, unwatched and undated.
func (s *WatchlistService) Add(userID int, req models.AddWatchlistRequest) (*models.WatchlistEntry, error) {
	if req.MovieID <= 0 || req.Title == "" {
		return nil, validationError("movie ID and title are required")
	}

	entry, err := s.repo.Create(userID, req)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}

	entry.Status = entry.StatusAt(s.today())
	return entry, nil
}

// List returns every entry with its derived status, newest first.
func (s *WatchlistService) List(userID int) (*models.WatchlistResponse, error) {
	entries, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	today := s.today()
	for i := range entries {
		entries[i].Status = entries[i].StatusAt(today)
	}
	return &models.WatchlistResponse{Movies: entries}, nil
}

// Grouped returns the three derived views of the list in one response.
func (s *WatchlistService) Grouped(userID int) (*models.WatchlistGroups, error) {
	entries, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	groups := models.GroupEntries(entries, s.today())
	return &groups, nil
}

// Upcoming returns entries scheduled for a future day, sorted ascending by
// date.
func (s *WatchlistService) Upcoming(userID int) ([]models.WatchlistEntry, error) {
	groups, err := s.Grouped(userID)
	if err != nil {
		return nil, err
	}
	return groups.Upcoming, nil
}

// WatchedOn returns the entries watched on one calendar day.
func (s *WatchlistService) WatchedOn(userID int, day string) ([]models.WatchlistEntry, error) {
	if day == "" {
		return nil, validationError("date is required (YYYY-MM-DD)")
	}
	parsed, err := watch.ParseDay(day, s.loc)
	if err != nil {
		return nil, validationError("invalid date format, expected YYYY-MM-DD")
	}

	entries, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return models.WatchedOn(entries, parsed, s.today()), nil
}

// WatchedDates returns the distinct days with at least one watched entry.
func (s *WatchlistService) WatchedDates(userID int) ([]string, error) {
	entries, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return models.WatchedDays(entries, s.today()), nil
}

// SetWatchDate schedules a movie or marks it watched, depending only on
// whether the day is in the future. Both intents are the same mutation;
// callers read the returned status to label the outcome. Repeating the call
// with the same date is a no-op.
func (s *WatchlistService) SetWatchDate(userID, movieID int, day string) (*models.WatchlistEntry, error) {
	if day == "" {
		return nil, validationError("date is required")
	}
	if _, err := watch.ParseDay(day, s.loc); err != nil {
		return nil, validationError("invalid date format, expected YYYY-MM-DD")
	}

	if err := s.repo.SetWatchState(userID, movieID, true, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set watch date: %w", err)
	}

	entry, err := s.repo.GetByMovie(userID, movieID)
	if err != nil {
		// The row can be deleted between the update and the reload.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}
	entry.Status = entry.StatusAt(s.today())

	slog.Info("watch date set", "user_id", userID, "movie_id", movieID,
		"date", day, "status", entry.Status)
	return entry, nil
}

// Unmark resets an entry to unwatched with no date. The rating is left in
// place on purpose: re-marking the movie later surfaces the old rating again,
// matching how the product has always behaved.
func (s *WatchlistService) Unmark(userID, movieID int) error {
	if err := s.repo.SetWatchState(userID, movieID, false, ""); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to unmark: %w", err)
	}
	return nil
}

// Rate sets or clears (nil) the rating of a movie whose derived status is
// watched. Entries that are merely scheduled fail the same way a missing
// entry does, not as a validation problem: the record is not in the expected
// state.
func (s *WatchlistService) Rate(userID, movieID int, rating *int) (*models.WatchlistEntry, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, validationError("rating must be an integer between 1 and 5, or null to clear")
	}

	entry, err := s.repo.GetByMovie(userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry.StatusAt(s.today()) != watch.StatusWatched {
		return nil, ErrNotFound
	}

	if err := s.repo.UpdateRating(userID, movieID, rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	entry.Rating = rating
	entry.Status = watch.StatusWatched
	return entry, nil
}

// Remove deletes the entry for a (user, movie) pair.
func (s *WatchlistService) Remove(userID, movieID int) error {
	if movieID <= 0 {
		return validationError("movie ID is required")
	}
	if err := s.repo.Delete(userID, movieID); err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}
