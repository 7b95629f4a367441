package repository

import (
	"context"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const businessColumns = `id, owner_id, name, street_address, city, state, zip_code`

type BusinessRepository struct {
	db DBTX
}

func NewBusinessRepository(db DBTX) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func scanBusiness(row pgx.Row) (business.Business, error) {
	var b business.Business
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.StreetAddress, &b.City, &b.State, &b.ZipCode)
	return b, err
}

func collectBusinesses(rows pgx.Rows) ([]business.Business, error) {
	defer rows.Close()

	businesses := []business.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// Create inserts b and returns the stored row, id included.
func (r *BusinessRepository) Create(ctx context.Context, b business.Business) (business.Business, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO businesses (owner_id, name, street_address, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+businessColumns,
		b.OwnerID, b.Name, b.StreetAddress, b.City, b.State, b.ZipCode,
	)

	created, err := scanBusiness(row)
	if err != nil {
		return business.Business{}, errors.Wrap(err, "insert business")
	}
	return created, nil
}

// GetByID returns pgx.ErrNoRows (wrapped) when id does not exist.
func (r *BusinessRepository) GetByID(ctx context.Context, id int) (business.Business, error) {
	row := r.db.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)

	b, err := scanBusiness(row)
	if err != nil {
		return business.Business{}, errors.Wrapf(err, "get business %d", id)
	}
	return b, nil
}

// Update replaces every attribute of b.ID in a single statement and
// returns pgx.ErrNoRows (wrapped) when the row does not exist.
func (r *BusinessRepository) Update(ctx context.Context, b business.Business) (business.Business, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE businesses
		SET owner_id = $1, name = $2, street_address = $3, city = $4, state = $5, zip_code = $6
		WHERE id = $7
		RETURNING `+businessColumns,
		b.OwnerID, b.Name, b.StreetAddress, b.City, b.State, b.ZipCode, b.ID,
	)

	updated, err := scanBusiness(row)
	if err != nil {
		return business.Business{}, errors.Wrapf(err, "update business %d", b.ID)
	}
	return updated, nil
}

// Delete removes the business and its reviews in one transaction.
//
// When no business row matches, the transaction is rolled back, so the
// reviews are kept, and pgx.ErrNoRows (wrapped) is returned.
func (r *BusinessRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin delete business")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE business_id = $1`, id); err != nil {
		_ = tx.Rollback(ctx)
		return errors.Wrapf(err, "delete reviews of business %d", id)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.Wrapf(err, "delete business %d", id)
	}

	if tag.RowsAffected() != 1 {
		_ = tx.Rollback(ctx)
		return errors.Wrapf(pgx.ErrNoRows, "delete business %d", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrapf(err, "commit delete business %d", id)
	}
	return nil
}

// List fetches one row past the page so the caller knows whether another
// page exists.
func (r *BusinessRepository) List(ctx context.Context, page model.Page) (model.PageResult[business.Business], error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+businessColumns+` FROM businesses ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit+1, page.Offset,
	)
	if err != nil {
		return model.PageResult[business.Business]{}, errors.Wrap(err, "list businesses")
	}

	businesses, err := collectBusinesses(rows)
	if err != nil {
		return model.PageResult[business.Business]{}, errors.Wrap(err, "scan businesses")
	}
	return model.NewPageResult(businesses, page), nil
}

func (r *BusinessRepository) ListByOwner(ctx context.Context, ownerID int) ([]business.Business, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE owner_id = $1 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "list businesses of owner %d", ownerID)
	}

	businesses, err := collectBusinesses(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "scan businesses of owner %d", ownerID)
	}
	return businesses, nil
}
