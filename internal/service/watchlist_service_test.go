package service

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
	"github.com/FrankoSolomun/movie-watchlist/internal/watch"
)

const (
	testUserID  = 7
	testMovieID = 550
)

var entryCols = []string{
	"id", "user_id", "movie_id", "title", "poster_url", "release_date",
	"note", "watched", "occurs_on", "rating", "created_at",
}

func newWatchlistService(t *testing.T) (*WatchlistService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewWatchlistService(repository.NewWatchlistRepository(db), time.UTC)
	// Pin "today" to 2024-01-15 for every classification.
	svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc, mock
}

func entryRow(watched bool, occursOn string, rating interface{}) *sqlmock.Rows {
	return sqlmock.NewRows(entryCols).
		AddRow(1, testUserID, testMovieID, "Fight Club", "", "1999-10-15", "",
			watched, occursOn, rating, time.Now())
}

func TestWatchlistAdd(t *testing.T) {
	t.Run("requires movie ID and title", func(t *testing.T) {
		svc, _ := newWatchlistService(t)

		_, err := svc.Add(testUserID, models.AddWatchlistRequest{MovieID: testMovieID})
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)

		_, err = svc.Add(testUserID, models.AddWatchlistRequest{Title: "Fight Club"})
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("duplicate entry maps to conflict", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`INSERT INTO watchlist`).
			WithArgs(testUserID, testMovieID, "Fight Club", "", "", "").
			WillReturnError(&pq.Error{Code: uniqueViolation})

		_, err := svc.Add(testUserID, models.AddWatchlistRequest{MovieID: testMovieID, Title: "Fight Club"})
		assert.ErrorIs(t, err, ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("new entry starts as to-watch", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`INSERT INTO watchlist`).
			WithArgs(testUserID, testMovieID, "Fight Club", "", "", "").
			WillReturnRows(entryRow(false, "", nil))

		entry, err := svc.Add(testUserID, models.AddWatchlistRequest{MovieID: testMovieID, Title: "Fight Club"})
		require.NoError(t, err)
		assert.Equal(t, watch.StatusToWatch, entry.Status)
		assert.Nil(t, entry.Rating)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWatchlistList_DerivesStatuses(t *testing.T) {
	svc, mock := newWatchlistService(t)

	rows := sqlmock.NewRows(entryCols).
		AddRow(1, testUserID, 100, "A", "", "", "", false, "", nil, time.Now()).
		AddRow(2, testUserID, 200, "B", "", "", "", true, "2024-01-10", 4, time.Now()).
		AddRow(3, testUserID, 300, "C", "", "", "", true, "2024-01-20", nil, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
		WithArgs(testUserID).
		WillReturnRows(rows)

	result, err := svc.List(testUserID)
	require.NoError(t, err)
	require.Len(t, result.Movies, 3)
	assert.Equal(t, watch.StatusToWatch, result.Movies[0].Status)
	assert.Equal(t, watch.StatusWatched, result.Movies[1].Status)
	assert.Equal(t, watch.StatusUpcoming, result.Movies[2].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWatchDate(t *testing.T) {
	t.Run("date required", func(t *testing.T) {
		svc, _ := newWatchlistService(t)
		_, err := svc.SetWatchDate(testUserID, testMovieID, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "date is required", vErr.Msg)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		svc, _ := newWatchlistService(t)
		_, err := svc.SetWatchDate(testUserID, testMovieID, "01/20/2024")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown movie is not found", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-20", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-20")
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("entry removed before reload is not found", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-20", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(sqlmock.NewRows(entryCols))

		_, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-20")
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("future date schedules", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-20", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-20", nil))

		entry, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-20")
		require.NoError(t, err)
		assert.Equal(t, watch.StatusUpcoming, entry.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("past date marks watched", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-10", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-10", nil))

		entry, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-10")
		require.NoError(t, err)
		assert.Equal(t, watch.StatusWatched, entry.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scheduled entry becomes watched once the day passes", func(t *testing.T) {
		// Same stored record, only the clock moves.
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-20", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-20", nil))

		entry, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-20")
		require.NoError(t, err)
		assert.Equal(t, watch.StatusUpcoming, entry.Status)

		svc.now = func() time.Time {
			return time.Date(2024, 1, 21, 8, 0, 0, 0, time.UTC)
		}
		assert.Equal(t, watch.StatusWatched, entry.StatusAt(svc.today()))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRate(t *testing.T) {
	t.Run("out of range rating rejected", func(t *testing.T) {
		svc, _ := newWatchlistService(t)
		six := 6
		_, err := svc.Rate(testUserID, testMovieID, &six)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)

		zero := 0
		_, err = svc.Rate(testUserID, testMovieID, &zero)
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(sqlmock.NewRows(entryCols))

		three := 3
		_, err := svc.Rate(testUserID, testMovieID, &three)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("to-watch entry cannot be rated", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(false, "", nil))

		three := 3
		_, err := svc.Rate(testUserID, testMovieID, &three)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upcoming entry cannot be rated", func(t *testing.T) {
		// The stored flag says watched, but the derived status is upcoming, so
		// the failure is the not-found class, not validation.
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-20", nil))

		three := 3
		_, err := svc.Rate(testUserID, testMovieID, &three)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("watched entry takes a rating", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-10", nil))
		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(3, testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		three := 3
		entry, err := svc.Rate(testUserID, testMovieID, &three)
		require.NoError(t, err)
		require.NotNil(t, entry.Rating)
		assert.Equal(t, 3, *entry.Rating)
		assert.Equal(t, watch.StatusWatched, entry.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null clears the rating", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-10", 4))
		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(nil, testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		entry, err := svc.Rate(testUserID, testMovieID, nil)
		require.NoError(t, err)
		assert.Nil(t, entry.Rating)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnmark(t *testing.T) {
	t.Run("resets flag and date only", func(t *testing.T) {
		// The rating column is deliberately untouched; a later re-mark
		// surfaces the old rating again.
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(false, nil, testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Unmark(testUserID, testMovieID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rating survives unmark and re-mark", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(false, nil, testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(true, "2024-01-12", testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Reload after re-mark still carries the stale rating.
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID, testMovieID).
			WillReturnRows(entryRow(true, "2024-01-12", 4))

		require.NoError(t, svc.Unmark(testUserID, testMovieID))

		entry, err := svc.SetWatchDate(testUserID, testMovieID, "2024-01-12")
		require.NoError(t, err)
		require.NotNil(t, entry.Rating)
		assert.Equal(t, 4, *entry.Rating)
		assert.Equal(t, watch.StatusWatched, entry.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown movie is not found", func(t *testing.T) {
		svc, mock := newWatchlistService(t)

		mock.ExpectExec(`UPDATE watchlist`).
			WithArgs(false, nil, testUserID, testMovieID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.Unmark(testUserID, testMovieID)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWatchedOnAndDates(t *testing.T) {
	listRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(entryCols).
			AddRow(1, testUserID, 100, "A", "", "", "", true, "2024-01-10", nil, time.Now()).
			AddRow(2, testUserID, 200, "B", "", "", "", true, "2024-01-10", 5, time.Now()).
			AddRow(3, testUserID, 300, "C", "", "", "", true, "2024-01-20", nil, time.Now()).
			AddRow(4, testUserID, 400, "D", "", "", "", false, "", nil, time.Now())
	}

	t.Run("movies watched on a day", func(t *testing.T) {
		svc, mock := newWatchlistService(t)
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID).
			WillReturnRows(listRows())

		movies, err := svc.WatchedOn(testUserID, "2024-01-10")
		require.NoError(t, err)
		assert.Len(t, movies, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date parameter required", func(t *testing.T) {
		svc, _ := newWatchlistService(t)
		_, err := svc.WatchedOn(testUserID, "")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("watched day set excludes upcoming", func(t *testing.T) {
		svc, mock := newWatchlistService(t)
		mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
			WithArgs(testUserID).
			WillReturnRows(listRows())

		dates, err := svc.WatchedDates(testUserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-10"}, dates)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemove(t *testing.T) {
	svc, mock := newWatchlistService(t)

	mock.ExpectExec(`DELETE FROM watchlist`).
		WithArgs(testUserID, testMovieID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Remove(testUserID, testMovieID))
	require.NoError(t, mock.ExpectationsWereMet())

	err := svc.Remove(testUserID, 0)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestRepositoryErrorsAreWrapped(t *testing.T) {
	svc, mock := newWatchlistService(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT (.+) FROM watchlist`).
		WithArgs(testUserID).
		WillReturnError(dbErr)

	_, err := svc.List(testUserID)
	assert.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
