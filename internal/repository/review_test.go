package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/deppfellow/review-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewRowColumns = []string{"id", "user_id", "business_id", "stars", "review_text"}

func TestReviewRepositoryCreate(t *testing.T) {
	t.Run("Inserted", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(1, 2, 5, "great").
			WillReturnRows(pgxmock.NewRows(reviewRowColumns).AddRow(10, 1, 2, 5, "great"))

		got, err := repo.Create(context.Background(), review.Review{UserID: 1, BusinessID: 2, Stars: 5, ReviewText: "great"})
		require.NoError(t, err)
		assert.Equal(t, review.Review{ID: 10, UserID: 1, BusinessID: 2, Stars: 5, ReviewText: "great"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicatePair", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(1, 2, 4, "").
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				TableName:      "reviews",
				ConstraintName: "reviews_user_id_business_id_key",
			})

		_, err := repo.Create(context.Background(), review.Review{UserID: 1, BusinessID: 2, Stars: 4})
		assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewRepositoryUpdate(t *testing.T) {
	t.Run("StarsOnly", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`review_text = COALESCE($2, review_text)`)).
			WithArgs(4, (*string)(nil), 10).
			WillReturnRows(pgxmock.NewRows(reviewRowColumns).AddRow(10, 1, 2, 4, "kept"))

		got, err := repo.Update(context.Background(), 10, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, "kept", got.ReviewText)
		assert.Equal(t, 4, got.Stars)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		text := "new"
		mock.ExpectQuery(`UPDATE reviews`).
			WithArgs(1, &text, 77).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Update(context.Background(), 77, 1, &text)
		assert.True(t, sqlerr.IsNoRows(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReviewRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1`)).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1`)).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	err := repo.Delete(context.Background(), 3)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryListing(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews ORDER BY id LIMIT $1 OFFSET $2`)).
			WithArgs(2, 0).
			WillReturnRows(pgxmock.NewRows(reviewRowColumns).
				AddRow(1, 1, 1, 3, "").
				AddRow(2, 2, 1, 4, "ok"))

		result, err := repo.List(context.Background(), model.Page{Offset: 0, Limit: 1})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.True(t, result.HasMore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByUser", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewReviewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE user_id = $1 ORDER BY id`)).
			WithArgs(8).
			WillReturnRows(pgxmock.NewRows(reviewRowColumns).AddRow(4, 8, 2, 5, "x"))

		got, err := repo.ListByUser(context.Background(), 8)
		require.NoError(t, err)
		assert.Equal(t, []review.Review{{ID: 4, UserID: 8, BusinessID: 2, Stars: 5, ReviewText: "x"}}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
