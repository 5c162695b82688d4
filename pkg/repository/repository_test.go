package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/docquest/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	serialization := &pgconn.PgError{Code: "40001"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, errNotFound},
		{"wrapped foreign key violation", fmt.Errorf("item 2: %w", &pgconn.PgError{Code: "23503"}), errNotFound},
		{"other pg error", serialization, serialization},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type execCall struct {
	query string
	args  []any
}

type fakeExecutor struct {
	calls  []execCall
	failAt int
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query, args})
	if len(f.calls)-1 == f.failAt {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	return driverResult(1), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestExecEach(t *testing.T) {
	ids := []string{"page_0_block_0", "page_0_block_1", "page_1_block_0"}
	exec := &fakeExecutor{failAt: -1}

	n, err := repository.ExecEach(context.Background(), exec, "INSERT", ids, func(id string) []any {
		return []any{"default_doc", id}
	})
	if err != nil {
		t.Fatalf("ExecEach: %v", err)
	}
	if n != 3 || len(exec.calls) != 3 {
		t.Fatalf("executed %d (%d calls), want 3", n, len(exec.calls))
	}
	if exec.calls[1].args[1] != "page_0_block_1" {
		t.Errorf("call 1 args = %v", exec.calls[1].args)
	}
}

func TestExecEachStopsAtFailure(t *testing.T) {
	exec := &fakeExecutor{failAt: 1}

	n, err := repository.ExecEach(context.Background(), exec, "INSERT", []int{10, 20, 30}, func(v int) []any {
		return []any{v}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if n != 1 {
		t.Errorf("completed = %d, want 1", n)
	}
	if len(exec.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(exec.calls))
	}
	if !errors.Is(repository.MapError(err, errNotFound, errDuplicate), errNotFound) {
		t.Errorf("wrapped pg error should still map: %v", err)
	}
}
