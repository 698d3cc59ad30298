// Package trm runs a callback inside a store transaction carried by the context.
package trm

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Manager interface {
	Do(ctx context.Context, callback func(ctx context.Context) error) error
}

type txKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// ExtractTx returns the transaction started by a sqlx manager, if any.
func ExtractTx(ctx context.Context) *sqlx.Tx {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	if !ok {
		return nil
	}
	return tx
}

type sqlxManager struct {
	db *sqlx.DB
}

func NewManager(db *sqlx.DB) Manager {
	return &sqlxManager{db: db}
}

// Do joins an outer transaction when one is already in ctx.
func (m *sqlxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if ExtractTx(ctx) != nil {
		return callback(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := callback(withTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
