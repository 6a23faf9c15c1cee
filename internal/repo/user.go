package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

// RecordFailedLogin bumps the failure counter and, once it reaches the limit,
// sets the lock timestamp. A nil lockUntil clears any expired lock.
func (r *GormRepo) RecordFailedLogin(ctx context.Context, id uuid.UUID, attempts int, lockUntil *time.Time) error {
	updates := map[string]any{"login_attempts": attempts}
	if lockUntil != nil {
		updates["lock_until"] = *lockUntil
	} else {
		updates["lock_until"] = gorm.Expr("NULL")
	}
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ResetLoginAttempts clears the failure counter and lock after a successful
// password check.
func (r *GormRepo) ResetLoginAttempts(ctx context.Context, id uuid.UUID, loginAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"login_attempts": 0,
			"lock_until":     gorm.Expr("NULL"),
			"last_login":     loginAt,
		}).Error
}

func (r *GormRepo) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email_verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("password_reset_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// FindMatchingAddress looks up a saved address by its heuristic identity:
// name + address + contact equality.
func (r *GormRepo) FindMatchingAddress(ctx context.Context, userID uuid.UUID, name, address, contact string) (*models.Address, error) {
	var addr models.Address
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND name = ? AND address = ? AND contact = ?", userID, name, address, contact).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	if err := r.DB.WithContext(ctx).Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}
