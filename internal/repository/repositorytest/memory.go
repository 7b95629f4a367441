// Package repositorytest provides an in-memory stand-in for the
// PostgreSQL repositories.
//
// It reproduces the constraint behavior of the real schema (the
// business_id foreign key, the (user_id, business_id) unique index and
// pgx.ErrNoRows for missing rows) so service and handler tests exercise
// the same error paths as production.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type pair struct {
	userID     int
	businessID int
}

// Store holds both tables behind one lock.
type Store struct {
	mu sync.Mutex

	businesses     map[int]business.Business
	reviews        map[int]review.Review
	pairs          map[pair]int
	nextBusinessID int
	nextReviewID   int

	failure error
}

func NewStore() *Store {
	return &Store{
		businesses:     map[int]business.Business{},
		reviews:        map[int]review.Review{},
		pairs:          map[pair]int{},
		nextBusinessID: 1,
		nextReviewID:   1,
	}
}

// FailWith makes every following call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Businesses returns the businesses table view.
func (s *Store) Businesses() *Businesses {
	return &Businesses{s: s}
}

// Reviews returns the reviews table view.
func (s *Store) Reviews() *Reviews {
	return &Reviews{s: s}
}

// ReviewCount reports how many reviews reference businessID.
func (s *Store) ReviewCount(businessID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rv := range s.reviews {
		if rv.BusinessID == businessID {
			n++
		}
	}
	return n
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func window[T any](rows []T, page model.Page) model.PageResult[T] {
	if page.Offset >= len(rows) {
		return model.NewPageResult([]T{}, page)
	}
	end := min(page.Offset+page.Limit+1, len(rows))
	return model.NewPageResult(rows[page.Offset:end], page)
}

type Businesses struct {
	s *Store
}

func (b *Businesses) Create(_ context.Context, in business.Business) (business.Business, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return business.Business{}, b.s.failure
	}

	in.ID = b.s.nextBusinessID
	b.s.nextBusinessID++
	b.s.businesses[in.ID] = in
	return in, nil
}

func (b *Businesses) GetByID(_ context.Context, id int) (business.Business, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return business.Business{}, b.s.failure
	}

	found, ok := b.s.businesses[id]
	if !ok {
		return business.Business{}, errors.Wrapf(pgx.ErrNoRows, "get business %d", id)
	}
	return found, nil
}

func (b *Businesses) Update(_ context.Context, in business.Business) (business.Business, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return business.Business{}, b.s.failure
	}

	if _, ok := b.s.businesses[in.ID]; !ok {
		return business.Business{}, errors.Wrapf(pgx.ErrNoRows, "update business %d", in.ID)
	}
	b.s.businesses[in.ID] = in
	return in, nil
}

func (b *Businesses) Delete(_ context.Context, id int) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return b.s.failure
	}

	if _, ok := b.s.businesses[id]; !ok {
		return errors.Wrapf(pgx.ErrNoRows, "delete business %d", id)
	}

	for rid, rv := range b.s.reviews {
		if rv.BusinessID == id {
			delete(b.s.pairs, pair{rv.UserID, rv.BusinessID})
			delete(b.s.reviews, rid)
		}
	}
	delete(b.s.businesses, id)
	return nil
}

func (b *Businesses) List(_ context.Context, page model.Page) (model.PageResult[business.Business], error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return model.PageResult[business.Business]{}, b.s.failure
	}

	rows := []business.Business{}
	for _, id := range sortedKeys(b.s.businesses) {
		rows = append(rows, b.s.businesses[id])
	}
	return window(rows, page), nil
}

func (b *Businesses) ListByOwner(_ context.Context, ownerID int) ([]business.Business, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.failure != nil {
		return nil, b.s.failure
	}

	rows := []business.Business{}
	for _, id := range sortedKeys(b.s.businesses) {
		if found := b.s.businesses[id]; found.OwnerID == ownerID {
			rows = append(rows, found)
		}
	}
	return rows, nil
}

type Reviews struct {
	s *Store
}

func (r *Reviews) Create(_ context.Context, in review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return review.Review{}, r.s.failure
	}

	if _, ok := r.s.businesses[in.BusinessID]; !ok {
		return review.Review{}, errors.Wrap(&pgconn.PgError{
			Code:           "23503",
			Severity:       "ERROR",
			Message:        `insert or update on table "reviews" violates foreign key constraint "reviews_business_id_fkey"`,
			TableName:      "reviews",
			ConstraintName: "reviews_business_id_fkey",
		}, "insert review")
	}

	key := pair{in.UserID, in.BusinessID}
	if _, ok := r.s.pairs[key]; ok {
		return review.Review{}, errors.Wrap(&pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			Message:        `duplicate key value violates unique constraint "reviews_user_id_business_id_key"`,
			TableName:      "reviews",
			ConstraintName: "reviews_user_id_business_id_key",
		}, "insert review")
	}

	in.ID = r.s.nextReviewID
	r.s.nextReviewID++
	r.s.reviews[in.ID] = in
	r.s.pairs[key] = in.ID
	return in, nil
}

func (r *Reviews) GetByID(_ context.Context, id int) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return review.Review{}, r.s.failure
	}

	found, ok := r.s.reviews[id]
	if !ok {
		return review.Review{}, errors.Wrapf(pgx.ErrNoRows, "get review %d", id)
	}
	return found, nil
}

func (r *Reviews) Update(_ context.Context, id, stars int, reviewText *string) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return review.Review{}, r.s.failure
	}

	found, ok := r.s.reviews[id]
	if !ok {
		return review.Review{}, errors.Wrapf(pgx.ErrNoRows, "update review %d", id)
	}

	found.Stars = stars
	if reviewText != nil {
		found.ReviewText = *reviewText
	}
	r.s.reviews[id] = found
	return found, nil
}

func (r *Reviews) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	found, ok := r.s.reviews[id]
	if !ok {
		return errors.Wrapf(pgx.ErrNoRows, "delete review %d", id)
	}
	delete(r.s.pairs, pair{found.UserID, found.BusinessID})
	delete(r.s.reviews, id)
	return nil
}

func (r *Reviews) List(_ context.Context, page model.Page) (model.PageResult[review.Review], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return model.PageResult[review.Review]{}, r.s.failure
	}

	rows := []review.Review{}
	for _, id := range sortedKeys(r.s.reviews) {
		rows = append(rows, r.s.reviews[id])
	}
	return window(rows, page), nil
}

func (r *Reviews) ListByUser(_ context.Context, userID int) ([]review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	rows := []review.Review{}
	for _, id := range sortedKeys(r.s.reviews) {
		if found := r.s.reviews[id]; found.UserID == userID {
			rows = append(rows, found)
		}
	}
	return rows, nil
}
