// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Repositories never hold a pool of their own: the connection
// capability is handed to NewRepositories by the caller.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of *pgxpool.Pool the repositories use. pgxmock pools
// satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Business *BusinessRepository
	Review   *ReviewRepository
}

// NewRepositories constructs the repository container over db.
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Business: NewBusinessRepository(db),
		Review:   NewReviewRepository(db),
	}
}
