package gateway

import (
	"context"
	"errors"

	"github.com/lokiedu/yoga_admin/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGateway implements Gateway over a Postgres database.
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

func (g *GormGateway) ListClasses(ctx context.Context) ([]models.YogaClass, error) {
	var classes []models.YogaClass
	err := g.db.WithContext(ctx).Order("date").Find(&classes).Error
	return classes, err
}

func (g *GormGateway) GetClass(ctx context.Context, id string) (*models.YogaClass, error) {
	var class models.YogaClass
	if err := g.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &class, nil
}

func (g *GormGateway) PutClass(ctx context.Context, class models.YogaClass) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&class).Error
}

func (g *GormGateway) DeleteClass(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&models.YogaClass{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) ListClassTypes(ctx context.Context) ([]models.ClassType, error) {
	var types []models.ClassType
	err := g.db.WithContext(ctx).Order("name").Find(&types).Error
	return types, err
}

func (g *GormGateway) GetClassType(ctx context.Context, id string) (*models.ClassType, error) {
	var ct models.ClassType
	if err := g.db.WithContext(ctx).First(&ct, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &ct, nil
}

func (g *GormGateway) ListInstancesByClass(ctx context.Context, classID string) ([]models.YogaClassInstance, error) {
	var instances []models.YogaClassInstance
	err := g.db.WithContext(ctx).Where("class_id = ?", classID).Order("instance_date").Find(&instances).Error
	return instances, err
}

func (g *GormGateway) GetInstance(ctx context.Context, id string) (*models.YogaClassInstance, error) {
	var inst models.YogaClassInstance
	if err := g.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &inst, nil
}

func (g *GormGateway) PutInstance(ctx context.Context, inst models.YogaClassInstance) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&inst).Error
}

func (g *GormGateway) DeleteInstance(ctx context.Context, id string) error {
	// No RowsAffected check here: an already-deleted instance is a success,
	// which keeps cascade deletes retryable.
	return g.db.WithContext(ctx).Delete(&models.YogaClassInstance{}, "id = ?", id).Error
}

func (g *GormGateway) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (g *GormGateway) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (g *GormGateway) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := g.db.WithContext(ctx).Where("role = ?", role).Order("name").Find(&users).Error
	return users, err
}

func (g *GormGateway) PutUser(ctx context.Context, user models.User) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&user).Error
}

func (g *GormGateway) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := g.db.WithContext(ctx).Order("booking_date desc, booking_time desc").Find(&bookings).Error
	return bookings, err
}

func (g *GormGateway) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := g.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &booking, nil
}

func (g *GormGateway) PatchBookingStatus(ctx context.Context, id, status string) error {
	res := g.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&txns).Error
	return txns, err
}

func (g *GormGateway) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := g.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &txn, nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
