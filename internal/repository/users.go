package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adboard/internal/models"
)

type Users struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUsers(db *gorm.DB, log *logrus.Logger) *Users {
	return &Users{db: db, log: log}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add stores a new user. A taken email yields ErrDuplicate.
func (r *Users) Add(ctx context.Context, u *models.User) error {
	u.Email = NormalizeEmail(u.Email)
	taken, err := r.EmailTaken(ctx, u.Email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if err := r.db.WithContext(ctx).Omit("Products").Create(u).Error; err != nil {
		r.log.Errorf("Failed to create user %s: %v", u.Email, err)
		return fmt.Errorf("create user: %w", translate(err))
	}
	r.log.Infof("User registered: id=%d email=%s", u.ID, u.Email)
	return nil
}

func (r *Users) EmailTaken(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", NormalizeEmail(email)).Count(&cnt).Error
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return cnt > 0, nil
}

func (r *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("user %d: %w", id, translate(err))
	}
	return &u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, translate(err))
	}
	return &u, nil
}

// SetRole changes the role of the user with the given email.
func (r *Users) SetRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	r.log.Infof("User %s role set to %s", u.Email, role)
	return u, nil
}

// Remove deletes the user; the database cascades to their products.
func (r *Users) Remove(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, u.ID).Error; err != nil {
		r.log.Errorf("Failed to delete user %d: %v", u.ID, err)
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	r.log.Infof("User deleted: id=%d email=%s", u.ID, u.Email)
	return nil
}
