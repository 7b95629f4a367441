package service

import (
	"context"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/sqlerr"
)

// BusinessStore is the persistence the business service needs.
type BusinessStore interface {
	Create(ctx context.Context, b business.Business) (business.Business, error)
	GetByID(ctx context.Context, id int) (business.Business, error)
	Update(ctx context.Context, b business.Business) (business.Business, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page model.Page) (model.PageResult[business.Business], error)
	ListByOwner(ctx context.Context, ownerID int) ([]business.Business, error)
}

type BusinessService struct {
	store BusinessStore
}

func NewBusinessService(store BusinessStore) *BusinessService {
	return &BusinessService{store: store}
}

func (s *BusinessService) Create(ctx context.Context, attrs business.Attributes) (business.Business, error) {
	created, err := s.store.Create(ctx, attrs.Business(0))
	if err != nil {
		return business.Business{}, writeFailure(err, "Unable to create business")
	}
	return created, nil
}

func (s *BusinessService) Get(ctx context.Context, id int) (business.Business, error) {
	found, err := s.store.GetByID(ctx, id)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return business.Business{}, errs.NewBusinessNotFoundError().WithCause(err)
		}
		return business.Business{}, err
	}
	return found, nil
}

// Update replaces every attribute of business id.
func (s *BusinessService) Update(ctx context.Context, id int, attrs business.Attributes) (business.Business, error) {
	updated, err := s.store.Update(ctx, attrs.Business(id))
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return business.Business{}, errs.NewBusinessNotFoundError().WithCause(err)
		}
		return business.Business{}, writeFailure(err, "Unable to update business")
	}
	return updated, nil
}

// Delete removes the business together with its reviews.
func (s *BusinessService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if sqlerr.IsNoRows(err) {
			return errs.NewBusinessNotFoundError().WithCause(err)
		}
		return writeFailure(err, "Unable to delete business")
	}
	return nil
}

func (s *BusinessService) List(ctx context.Context, page model.Page) (model.PageResult[business.Business], error) {
	return s.store.List(ctx, page)
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID int) ([]business.Business, error) {
	return s.store.ListByOwner(ctx, ownerID)
}
