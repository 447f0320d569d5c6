package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mapacultural/fomenta/internal/portal/store"
)

// errNestedTx: SQLite has no nested transactions and silently flattening
// them would break rollback semantics, so we refuse outright.
var errNestedTx = errors.New("sqlite: nested transactions are not supported")

// txStore is a Store whose queries run on a single *sql.Tx.
type txStore struct {
	Store
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}
