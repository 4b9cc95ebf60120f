package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adboard/internal/models"
)

type Categories struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCategories(db *gorm.DB, log *logrus.Logger) *Categories {
	return &Categories{db: db, log: log}
}

// List returns all categories ordered by name.
func (r *Categories) List(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (r *Categories) Find(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", id, translate(err))
	}
	return &cat, nil
}

// Ensure creates the named categories that do not exist yet and reports how many were added.
func (r *Categories) Ensure(ctx context.Context, names ...string) (int, error) {
	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var cnt int64
		err := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&cnt).Error
		if err != nil {
			return added, fmt.Errorf("count category %q: %w", name, err)
		}
		if cnt > 0 {
			continue
		}
		if err := r.db.WithContext(ctx).Omit("Products").Create(&models.Category{Name: name}).Error; err != nil {
			return added, fmt.Errorf("create category %q: %w", name, translate(err))
		}
		added++
	}
	if added > 0 {
		r.log.Infof("Created %d categories", added)
	}
	return added, nil
}
