package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/deppfellow/review-api/internal/repository/repositorytest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func attributes(ownerID int, name string) business.Attributes {
	zip := business.ZipCode("97330")
	return business.Attributes{
		OwnerID:       ptr(ownerID),
		Name:          ptr(name),
		StreetAddress: ptr("1 Main St"),
		City:          ptr("Corvallis"),
		State:         ptr("OR"),
		ZipCode:       &zip,
	}
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func newServices() (*repositorytest.Store, *BusinessService, *ReviewService) {
	store := repositorytest.NewStore()
	return store, NewBusinessService(store.Businesses()), NewReviewService(store.Reviews())
}

func TestBusinessService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateGetUpdate", func(t *testing.T) {
		_, businesses, _ := newServices()

		created, err := businesses.Create(ctx, attributes(1, "First"))
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)

		found, err := businesses.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		updated, err := businesses.Update(ctx, created.ID, attributes(2, "Second"))
		require.NoError(t, err)
		assert.Equal(t, "Second", updated.Name)
		assert.Equal(t, 2, updated.OwnerID)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, businesses, _ := newServices()

		_, err := businesses.Get(ctx, 9)
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgBusinessNotFound)

		_, err = businesses.Update(ctx, 9, attributes(1, "x"))
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgBusinessNotFound)

		err = businesses.Delete(ctx, 9)
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgBusinessNotFound)
	})

	t.Run("DeleteCascadesToReviews", func(t *testing.T) {
		store, businesses, reviews := newServices()

		b, err := businesses.Create(ctx, attributes(1, "Doomed"))
		require.NoError(t, err)
		rv, err := reviews.Create(ctx, &review.CreateReviewRequest{UserID: ptr(5), BusinessID: ptr(b.ID), Stars: ptr(3)})
		require.NoError(t, err)

		require.NoError(t, businesses.Delete(ctx, b.ID))
		assert.Equal(t, 0, store.ReviewCount(b.ID))

		_, err = reviews.Get(ctx, rv.ID)
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgReviewNotFound)
	})

	t.Run("WriteFailureIs500WithMessage", func(t *testing.T) {
		store, businesses, _ := newServices()
		store.FailWith(errors.New("connection refused"))

		_, err := businesses.Create(ctx, attributes(1, "x"))
		requireHTTPError(t, err, http.StatusInternalServerError, "Unable to create business")
	})

	t.Run("CheckViolationIs400", func(t *testing.T) {
		store, businesses, _ := newServices()
		store.FailWith(&pgconn.PgError{Code: "22001", TableName: "businesses"})

		_, err := businesses.Create(ctx, attributes(1, "x"))
		requireHTTPError(t, err, http.StatusBadRequest, errs.MsgInvalidAttributes)
	})

	t.Run("ReadFailurePassesThrough", func(t *testing.T) {
		store, businesses, _ := newServices()
		boom := errors.New("connection refused")
		store.FailWith(boom)

		_, err := businesses.List(ctx, model.Page{Limit: 3})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("ListByOwner", func(t *testing.T) {
		_, businesses, _ := newServices()
		for _, owner := range []int{1, 2, 1} {
			_, err := businesses.Create(ctx, attributes(owner, "b"))
			require.NoError(t, err)
		}

		owned, err := businesses.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, 1, owned[0].ID)
		assert.Equal(t, 3, owned[1].ID)
	})
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownBusiness", func(t *testing.T) {
		_, _, reviews := newServices()

		_, err := reviews.Create(ctx, &review.CreateReviewRequest{UserID: ptr(1), BusinessID: ptr(404), Stars: ptr(5)})
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgBusinessNotFound)
	})

	t.Run("DuplicatePairConflicts", func(t *testing.T) {
		_, businesses, reviews := newServices()
		b, err := businesses.Create(ctx, attributes(1, "b"))
		require.NoError(t, err)

		req := &review.CreateReviewRequest{UserID: ptr(1), BusinessID: ptr(b.ID), Stars: ptr(5)}
		_, err = reviews.Create(ctx, req)
		require.NoError(t, err)

		_, err = reviews.Create(ctx, req)
		requireHTTPError(t, err, http.StatusConflict, errs.MsgReviewConflict)
	})

	t.Run("ConcurrentDuplicatesOnlyOneWins", func(t *testing.T) {
		_, businesses, reviews := newServices()
		b, err := businesses.Create(ctx, attributes(1, "b"))
		require.NoError(t, err)

		const callers = 8
		results := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = reviews.Create(ctx, &review.CreateReviewRequest{UserID: ptr(7), BusinessID: ptr(b.ID), Stars: ptr(4)})
			}(i)
		}
		wg.Wait()

		succeeded, conflicts := 0, 0
		for _, err := range results {
			var httpErr *errs.HTTPError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &httpErr) && httpErr.Status == http.StatusConflict:
				conflicts++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, callers-1, conflicts)
	})

	t.Run("UpdateStarsKeepsText", func(t *testing.T) {
		_, businesses, reviews := newServices()
		b, err := businesses.Create(ctx, attributes(1, "b"))
		require.NoError(t, err)
		rv, err := reviews.Create(ctx, &review.CreateReviewRequest{
			UserID: ptr(1), BusinessID: ptr(b.ID), Stars: ptr(2), ReviewText: ptr("meh"),
		})
		require.NoError(t, err)

		updated, err := reviews.Update(ctx, &review.UpdateReviewRequest{ID: rv.ID, Stars: ptr(4)})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Stars)
		assert.Equal(t, "meh", updated.ReviewText)

		updated, err = reviews.Update(ctx, &review.UpdateReviewRequest{ID: rv.ID, Stars: ptr(5), ReviewText: ptr("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.ReviewText)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		_, businesses, reviews := newServices()
		b, err := businesses.Create(ctx, attributes(1, "b"))
		require.NoError(t, err)
		rv, err := reviews.Create(ctx, &review.CreateReviewRequest{UserID: ptr(1), BusinessID: ptr(b.ID), Stars: ptr(0)})
		require.NoError(t, err)

		require.NoError(t, reviews.Delete(ctx, rv.ID))
		err = reviews.Delete(ctx, rv.ID)
		requireHTTPError(t, err, http.StatusNotFound, errs.MsgReviewNotFound)
	})

	t.Run("WriteFailure", func(t *testing.T) {
		store, _, reviews := newServices()
		store.FailWith(errors.New("timeout"))

		err := reviews.Delete(ctx, 1)
		requireHTTPError(t, err, http.StatusInternalServerError, "Unable to delete review")
	})
}
