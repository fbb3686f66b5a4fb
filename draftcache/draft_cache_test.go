package draftcache

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	return NewGormStore(gdb), mock
}

// An empty cache is a normal outcome: nil draft, nil error.
func TestGetFirstDraftEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "class_drafts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	draft, err := store.GetFirstDraft(context.Background())
	if err != nil {
		t.Fatalf("empty cache must not error: %v", err)
	}
	if draft != nil {
		t.Fatalf("empty cache must return nil, got %+v", draft)
	}
}

func TestGetFirstDraftReturnsRow(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "date", "time", "capacity", "price", "stage"}).
		AddRow("20250101120000000", "Morning Flow", "2025-01-01", "09:00", 5, 250000.0, "details")
	mock.ExpectQuery(`SELECT \* FROM "class_drafts"`).WillReturnRows(rows)

	draft, err := store.GetFirstDraft(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft == nil || draft.ID != "20250101120000000" || draft.Title != "Morning Flow" || draft.Stage != "details" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestDeleteDraft(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "class_drafts" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Delete(context.Background(), "20250101120000000"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClearAll(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "class_drafts"`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := store.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
