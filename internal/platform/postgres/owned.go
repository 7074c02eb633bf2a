package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/store"
)

// ownedTable scopes mutations on a table to rows owned by one user. A row
// that exists but belongs to someone else behaves exactly like a missing row:
// nothing changes and notFound is returned.
//
// Table and column names are compile-time constants of this package, never
// request input.
type ownedTable struct {
	name     string
	notFound error
}

// update sets columns to values on the row (id, ownerID). Placeholders $1 and
// $2 are the id and owner; values follow from $3.
func (t ownedTable) update(
	ctx context.Context,
	db store.DBTX,
	id, ownerID uuid.UUID,
	columns []string,
	values ...any,
) error {
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("update %s: %d columns for %d values", t.name, len(columns), len(values))
	}

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+3)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND user_id = $2",
		t.name, strings.Join(assignments, ", "))

	args := append([]any{id, ownerID}, values...)
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err, t.notFound)
	}
	return CheckRowsAffected(result, t.notFound)
}

// delete removes the row (id, ownerID).
func (t ownedTable) delete(ctx context.Context, db store.DBTX, id, ownerID uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", t.name)
	result, err := db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return MapError(err, t.notFound)
	}
	return CheckRowsAffected(result, t.notFound)
}
