package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsForeignKeyViolation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection refused"), false},
		{"sqlstate 23503", &pgconn.PgError{Code: "23503"}, true},
		{"wrapped sqlstate", fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"}), true},
		{"other sqlstate", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, false},
		{"flattened constraint message", errors.New(`update or delete on table "menu_items" violates foreign key constraint`), true},
		{"fkey in message", errors.New(`constraint "order_items_menu_item_fkey" failed`), true},
		{"unrelated message", errors.New("timeout"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsForeignKeyViolation(tc.err))
		})
	}
}

func TestPgErrorCode(t *testing.T) {
	assert.Equal(t, "23503", PgErrorCode(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, "", PgErrorCode(errors.New("no sqlstate here")))
	assert.Equal(t, "42501", PgErrorCode(fmt.Errorf("call: %w", &pgconn.PgError{Code: "42501"})))
}
