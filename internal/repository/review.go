package repository

import (
	"context"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const reviewColumns = `id, user_id, business_id, stars, COALESCE(review_text, '')`

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row pgx.Row) (review.Review, error) {
	var rv review.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.BusinessID, &rv.Stars, &rv.ReviewText)
	return rv, err
}

func collectReviews(rows pgx.Rows) ([]review.Review, error) {
	defer rows.Close()

	reviews := []review.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// Create inserts rv. The foreign key on business_id and the unique index
// on (user_id, business_id) surface as *pgconn.PgError, wrapped.
func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, business_id, stars, review_text)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reviewColumns,
		rv.UserID, rv.BusinessID, rv.Stars, rv.ReviewText,
	)

	created, err := scanReview(row)
	if err != nil {
		return review.Review{}, errors.Wrap(err, "insert review")
	}
	return created, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int) (review.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)

	rv, err := scanReview(row)
	if err != nil {
		return review.Review{}, errors.Wrapf(err, "get review %d", id)
	}
	return rv, nil
}

// Update sets stars and, when reviewText is non-nil, review_text.
func (r *ReviewRepository) Update(ctx context.Context, id, stars int, reviewText *string) (review.Review, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE reviews
		SET stars = $1, review_text = COALESCE($2, review_text)
		WHERE id = $3
		RETURNING `+reviewColumns,
		stars, reviewText, id,
	)

	rv, err := scanReview(row)
	if err != nil {
		return review.Review{}, errors.Wrapf(err, "update review %d", id)
	}
	return rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete review %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "delete review %d", id)
	}
	return nil
}

func (r *ReviewRepository) List(ctx context.Context, page model.Page) (model.PageResult[review.Review], error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit+1, page.Offset,
	)
	if err != nil {
		return model.PageResult[review.Review]{}, errors.Wrap(err, "list reviews")
	}

	reviews, err := collectReviews(rows)
	if err != nil {
		return model.PageResult[review.Review]{}, errors.Wrap(err, "scan reviews")
	}
	return model.NewPageResult(reviews, page), nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int) ([]review.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "list reviews of user %d", userID)
	}

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "scan reviews of user %d", userID)
	}
	return reviews, nil
}
