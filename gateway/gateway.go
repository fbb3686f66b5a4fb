package gateway

import (
	"context"
	"errors"

	"github.com/lokiedu/yoga_admin/models"
)

// ErrNotFound is returned by Get* methods when no record matches.
var ErrNotFound = errors.New("record not found")

// Gateway is the boundary to the remote collections. One instance is shared
// and passed explicitly to every workflow and handler.
type Gateway interface {
	ListClasses(ctx context.Context) ([]models.YogaClass, error)
	GetClass(ctx context.Context, id string) (*models.YogaClass, error)
	PutClass(ctx context.Context, class models.YogaClass) error
	DeleteClass(ctx context.Context, id string) error

	ListClassTypes(ctx context.Context) ([]models.ClassType, error)
	GetClassType(ctx context.Context, id string) (*models.ClassType, error)

	ListInstancesByClass(ctx context.Context, classID string) ([]models.YogaClassInstance, error)
	GetInstance(ctx context.Context, id string) (*models.YogaClassInstance, error)
	PutInstance(ctx context.Context, inst models.YogaClassInstance) error
	// DeleteInstance is idempotent: deleting an instance that is already gone
	// succeeds, so cascade deletes can be retried safely.
	DeleteInstance(ctx context.Context, id string) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
	PutUser(ctx context.Context, user models.User) error

	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	PatchBookingStatus(ctx context.Context, id, status string) error

	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
}

// BlobStore is the blob capability: upload bytes, get back a public URL.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	Delete(ctx context.Context, url string) error
}
