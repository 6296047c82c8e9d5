package service

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
)

var commentCols = []string{
	"id", "user_id", "movie_id", "content", "author", "created_at", "updated_at",
}

func newCommentService(t *testing.T) (*CommentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommentService(repository.NewCommentRepository(db)), mock
}

func TestCommentValidation(t *testing.T) {
	svc, _ := newCommentService(t)

	t.Run("whitespace-only content is empty", func(t *testing.T) {
		_, err := svc.Create(testUserID, testMovieID, "   ")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "comment cannot be empty", vErr.Msg)
	})

	t.Run("1001 characters is too long", func(t *testing.T) {
		_, err := svc.Create(testUserID, testMovieID, strings.Repeat("a", 1001))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Msg, "1000")
	})

	t.Run("1001 multi-byte characters is too long", func(t *testing.T) {
		_, err := svc.Create(testUserID, testMovieID, strings.Repeat("é", 1001))
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("missing movie ID", func(t *testing.T) {
		_, err := svc.Create(testUserID, 0, "fine comment")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCommentCreate(t *testing.T) {
	t.Run("exactly 1000 characters is accepted", func(t *testing.T) {
		svc, mock := newCommentService(t)
		content := strings.Repeat("a", 1000)

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs(testUserID, testMovieID, content).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectQuery(`SELECT (.+) FROM comments`).
			WithArgs(11).
			WillReturnRows(sqlmock.NewRows(commentCols).
				AddRow(11, testUserID, testMovieID, content, "franko", time.Now(), time.Now()))

		comment, err := svc.Create(testUserID, testMovieID, content)
		require.NoError(t, err)
		assert.Equal(t, 11, comment.ID)
		assert.Equal(t, "franko", comment.Author)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("length counts characters, not bytes", func(t *testing.T) {
		// 600 two-byte characters: 1200 bytes but well under the limit.
		svc, mock := newCommentService(t)
		content := strings.Repeat("é", 600)

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs(testUserID, testMovieID, content).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
		mock.ExpectQuery(`SELECT (.+) FROM comments`).
			WithArgs(13).
			WillReturnRows(sqlmock.NewRows(commentCols).
				AddRow(13, testUserID, testMovieID, content, "franko", time.Now(), time.Now()))

		_, err := svc.Create(testUserID, testMovieID, content)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("content is stored trimmed", func(t *testing.T) {
		svc, mock := newCommentService(t)

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs(testUserID, testMovieID, "great movie").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectQuery(`SELECT (.+) FROM comments`).
			WithArgs(12).
			WillReturnRows(sqlmock.NewRows(commentCols).
				AddRow(12, testUserID, testMovieID, "great movie", "franko", time.Now(), time.Now()))

		_, err := svc.Create(testUserID, testMovieID, "  great movie  ")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentUpdate(t *testing.T) {
	t.Run("owner can edit", func(t *testing.T) {
		svc, mock := newCommentService(t)

		mock.ExpectExec(`UPDATE comments`).
			WithArgs("edited", 11, testUserID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM comments`).
			WithArgs(11).
			WillReturnRows(sqlmock.NewRows(commentCols).
				AddRow(11, testUserID, testMovieID, "edited", "franko", time.Now(), time.Now()))

		comment, err := svc.Update(11, testUserID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", comment.Content)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner and missing comment get the same error", func(t *testing.T) {
		svc, mock := newCommentService(t)

		mock.ExpectExec(`UPDATE comments`).
			WithArgs("edited", 11, 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.Update(11, 999, "edited")
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentDelete(t *testing.T) {
	t.Run("owner can delete", func(t *testing.T) {
		svc, mock := newCommentService(t)

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs(11, testUserID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Delete(11, testUserID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		svc, mock := newCommentService(t)

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs(11, 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.Delete(11, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentList(t *testing.T) {
	svc, mock := newCommentService(t)

	mock.ExpectQuery(`SELECT (.+) FROM comments`).
		WithArgs(testMovieID).
		WillReturnRows(sqlmock.NewRows(commentCols).
			AddRow(2, 8, testMovieID, "second", "ana", time.Now(), time.Now()).
			AddRow(1, testUserID, testMovieID, "first", "franko", time.Now(), time.Now()))

	result, err := svc.List(testMovieID)
	require.NoError(t, err)
	assert.Equal(t, testMovieID, result.MovieID)
	require.Len(t, result.Comments, 2)
	assert.Equal(t, "ana", result.Comments[0].Author)
	require.NoError(t, mock.ExpectationsWereMet())
}
