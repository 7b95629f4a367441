package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var businessRowColumns = []string{"id", "owner_id", "name", "street_address", "city", "state", "zip_code"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleBusiness(id int) business.Business {
	return business.Business{
		ID:            id,
		OwnerID:       11,
		Name:          "Hacker Store",
		StreetAddress: "1 Main St",
		City:          "Corvallis",
		State:         "OR",
		ZipCode:       "97330",
	}
}

func businessRow(rows *pgxmock.Rows, b business.Business) *pgxmock.Rows {
	return rows.AddRow(b.ID, b.OwnerID, b.Name, b.StreetAddress, b.City, b.State, b.ZipCode)
}

func TestBusinessRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBusinessRepository(mock)

	want := sampleBusiness(1)
	mock.ExpectQuery(`INSERT INTO businesses`).
		WithArgs(want.OwnerID, want.Name, want.StreetAddress, want.City, want.State, want.ZipCode).
		WillReturnRows(businessRow(pgxmock.NewRows(businessRowColumns), want))

	in := want
	in.ID = 0
	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessRepositoryGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		want := sampleBusiness(3)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM businesses WHERE id = $1`)).
			WithArgs(3).
			WillReturnRows(businessRow(pgxmock.NewRows(businessRowColumns), want))

		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM businesses WHERE id = $1`)).
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 99)
		assert.True(t, errors.Is(err, pgx.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBusinessRepositoryUpdate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBusinessRepository(mock)

	want := sampleBusiness(4)
	want.Name = "Renamed"
	mock.ExpectQuery(`UPDATE businesses`).
		WithArgs(want.OwnerID, want.Name, want.StreetAddress, want.City, want.State, want.ZipCode, want.ID).
		WillReturnRows(businessRow(pgxmock.NewRows(businessRowColumns), want))

	got, err := repo.Update(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessRepositoryDelete(t *testing.T) {
	t.Run("CommitsBothDeletes", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE business_id = $1`)).
			WithArgs(5).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM businesses WHERE id = $1`)).
			WithArgs(5).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenBusinessMissing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE business_id = $1`)).
			WithArgs(6).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM businesses WHERE id = $1`)).
			WithArgs(6).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 6)
		assert.True(t, errors.Is(err, pgx.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnReviewDeleteFailure", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		boom := errors.New("connection reset")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE business_id = $1`)).
			WithArgs(7).
			WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 7)
		assert.True(t, errors.Is(err, boom))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBusinessRepositoryList(t *testing.T) {
	t.Run("ProbesOneExtraRow", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		rows := pgxmock.NewRows(businessRowColumns)
		for id := 3; id <= 5; id++ {
			businessRow(rows, sampleBusiness(id))
		}
		mock.ExpectQuery(regexp.QuoteMeta(`FROM businesses ORDER BY id LIMIT $1 OFFSET $2`)).
			WithArgs(3, 2).
			WillReturnRows(rows)

		result, err := repo.List(context.Background(), model.Page{Offset: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, 3, result.Items[0].ID)
		assert.Equal(t, 4, result.Items[1].ID)
		assert.True(t, result.HasMore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LastPage", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewBusinessRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM businesses ORDER BY id LIMIT $1 OFFSET $2`)).
			WithArgs(4, 0).
			WillReturnRows(businessRow(pgxmock.NewRows(businessRowColumns), sampleBusiness(1)))

		result, err := repo.List(context.Background(), model.Page{Offset: 0, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.False(t, result.HasMore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBusinessRepositoryListByOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBusinessRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM businesses WHERE owner_id = $1 ORDER BY id`)).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(businessRowColumns))

	got, err := repo.ListByOwner(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
