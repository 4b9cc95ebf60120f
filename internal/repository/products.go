package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adboard/internal/apperr"
	"adboard/internal/models"
)

type Products struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewProducts(db *gorm.DB, log *logrus.Logger) *Products {
	return &Products{db: db, log: log}
}

// Add inserts a new product or saves every column of an existing one.
// Associations are referenced by id only and never written through.
func (r *Products) Add(ctx context.Context, p *models.Product) error {
	if !p.Status.Valid() {
		return fmt.Errorf("product %q: invalid status %d", p.Name, p.Status)
	}
	if p.Price.IsZero() {
		p.Price.Currency = models.MainCurrency
	}
	if err := r.db.WithContext(ctx).Omit("User", "Category").Save(p).Error; err != nil {
		r.log.Errorf("Failed to save product %q: %v", p.Name, err)
		return fmt.Errorf("save product: %w", translate(err))
	}
	r.log.Infof("Product saved: id=%d user=%d", p.ID, p.UserID)
	return nil
}

func (r *Products) Remove(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, p.ID).Error; err != nil {
		r.log.Errorf("Failed to delete product %d: %v", p.ID, err)
		return fmt.Errorf("delete product %d: %w", p.ID, err)
	}
	r.log.Infof("Product deleted: id=%d user=%d", p.ID, p.UserID)
	return nil
}

func (r *Products) Find(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return nil, fmt.Errorf("product %d: %w", id, translate(err))
	}
	return &p, nil
}

// FindOneByOwner returns the product only when it belongs to userID.
func (r *Products) FindOneByOwner(ctx context.Context, id, userID uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if err != nil {
		return nil, fmt.Errorf("product %d of user %d: %w", id, userID, translate(err))
	}
	return &p, nil
}

// ListByOwner returns the user's products, newest first.
func (r *Products) ListByOwner(ctx context.Context, userID uint) ([]models.Product, error) {
	var items []models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ?", userID).Order("id desc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list products of user %d: %w", userID, err)
	}
	return items, nil
}

// ListApproved returns the public board, optionally limited to one category.
func (r *Products) ListApproved(ctx context.Context, categoryID uint) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("status = ?", models.StatusApproved)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var items []models.Product
	if err := q.Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list approved products: %w", err)
	}
	return items, nil
}

// ListByStatus returns products with their owners for moderation.
func (r *Products) ListByStatus(ctx context.Context, status models.Status) ([]models.Product, error) {
	var items []models.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("User").
		Where("status = ?", status).Order("id asc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list %s products: %w", status, err)
	}
	return items, nil
}

// SetStatus moves a product to another moderation status.
func (r *Products) SetStatus(ctx context.Context, id uint, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %d", status)
	}
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update status of product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	r.log.Infof("Product %d moved to %s", id, status)
	return nil
}
