package repository

import (
	"database/sql"
	"fmt"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
)

// WatchlistRepository handles database operations for watchlist entries.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

const entryColumns = `id, user_id, movie_id, title,
	COALESCE(poster_url, '') AS poster_url,
	COALESCE(release_date, '') AS release_date,
	COALESCE(note, '') AS note,
	watched,
	COALESCE(TO_CHAR(occurs_on, 'YYYY-MM-DD'), '') AS occurs_on,
	rating, created_at`

// Create inserts a new entry with no watch state. A duplicate (user, movie)
// pair surfaces as the unique-constraint error from the driver.
func (r *WatchlistRepository) Create(userID int, req models.AddWatchlistRequest) (*models.WatchlistEntry, error) {
	row := r.db.QueryRow(`
		INSERT INTO watchlist (user_id, movie_id, title, poster_url, release_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+entryColumns,
		userID, req.MovieID, req.Title, req.PosterURL, req.ReleaseDate, req.Note)
	return scanEntry(row)
}

// ListByUser returns all entries for a user, newest first.
func (r *WatchlistRepository) ListByUser(userID int) ([]models.WatchlistEntry, error) {
	rows, err := r.db.Query(`
		SELECT `+entryColumns+`
		FROM watchlist
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetByMovie returns the entry for a (user, movie) pair.
func (r *WatchlistRepository) GetByMovie(userID, movieID int) (*models.WatchlistEntry, error) {
	row := r.db.QueryRow(`
		SELECT `+entryColumns+`
		FROM watchlist
		WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	return scanEntry(row)
}

// SetWatchState updates the watched flag and the occurs-on day. An empty
// occursOn stores NULL.
func (r *WatchlistRepository) SetWatchState(userID, movieID int, watched bool, occursOn string) error {
	res, err := r.db.Exec(`
		UPDATE watchlist
		SET watched = $1, occurs_on = $2::date
		WHERE user_id = $3 AND movie_id = $4
	`, watched, nullableDay(occursOn), userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to update watch state: %w", err)
	}
	return requireRow(res)
}

// UpdateRating sets or clears the rating. The watched guard keeps ratings off
// rows that have never been marked.
func (r *WatchlistRepository) UpdateRating(userID, movieID int, rating *int) error {
	res, err := r.db.Exec(`
		UPDATE watchlist
		SET rating = $1
		WHERE user_id = $2 AND movie_id = $3 AND watched = TRUE
	`, nullableRating(rating), userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	return requireRow(res)
}

// Delete removes the entry for a (user, movie) pair.
func (r *WatchlistRepository) Delete(userID, movieID int) error {
	_, err := r.db.Exec(`
		DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	return err
}

// ---- scan helpers ----

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.WatchlistEntry, error) {
	return scanEntryRows(row)
}

func scanEntryRows(row rowScanner) (*models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	var rating sql.NullInt64
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.MovieID, &entry.Title,
		&entry.PosterURL, &entry.ReleaseDate, &entry.Note,
		&entry.Watched, &entry.OccursOn, &rating, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		entry.Rating = &v
	}
	return &entry, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullableDay(day string) interface{} {
	if day == "" {
		return nil
	}
	return day
}

func nullableRating(rating *int) interface{} {
	if rating == nil {
		return nil
	}
	return *rating
}
