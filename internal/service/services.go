// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Store failures are turned into *errs.HTTPError
// values here; anything left unmapped is handled by the global
// error handler.
package service

import (
	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/repository"
	"github.com/deppfellow/review-api/internal/sqlerr"
)

type Services struct {
	Business *BusinessService
	Review   *ReviewService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Business: NewBusinessService(repos.Business),
		Review:   NewReviewService(repos.Review),
	}
}

// writeFailure maps an unexpected error from a write. Constraint
// violations keep their client error, everything else becomes a 500
// carrying message.
func writeFailure(err error, message string) error {
	switch sqlerr.ErrCode(err) {
	case sqlerr.NotNullViolation, sqlerr.CheckViolation, sqlerr.StringTruncation,
		sqlerr.NumericOutOfRange, sqlerr.InvalidText:
		return sqlerr.HandleError(err)
	}
	return errs.NewInternalServerError().WithMessage(message).WithCause(err)
}
