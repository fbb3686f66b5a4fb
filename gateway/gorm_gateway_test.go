package gateway

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGateway(t *testing.T) (*GormGateway, sqlmock.Sqlmock) {
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

	return NewGormGateway(gdb), mock
}

func TestListUsersByRole(t *testing.T) {
	gw, mock := newMockGateway(t)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "role"}).
		AddRow("u1", "ann@x.com", "Ann", "instructor").
		AddRow("u2", "bob@x.com", "Bob", "instructor")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE role = $1`)).
		WithArgs("instructor").
		WillReturnRows(rows)

	users, err := gw.ListUsersByRole(context.Background(), "instructor")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Ann" || users[1].Email != "bob@x.com" {
		t.Fatalf("unexpected users: %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := gw.GetUserByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatchBookingStatus(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := gw.PatchBookingStatus(context.Background(), "b1", "Confirmed"); err != nil {
		t.Fatalf("patch: %v", err)
	}
}

func TestPatchBookingStatusUnknownBooking(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := gw.PatchBookingStatus(context.Background(), "missing", "Cancelled")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Deleting an instance that is already gone is a success, which is what
// keeps the class cascade retryable.
func TestDeleteInstanceIdempotent(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec(`DELETE FROM "yoga_class_instances" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := gw.DeleteInstance(context.Background(), "already-gone"); err != nil {
		t.Fatalf("delete of a missing instance must succeed, got %v", err)
	}
}

func TestDeleteClassNotFound(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec(`DELETE FROM "yoga_classes" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := gw.DeleteClass(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
