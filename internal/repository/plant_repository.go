// Package repository contains data access logic separated from HTTP handlers.
// This file defines the plant store: one gorm-backed repository performing
// single-row operations against the plants table.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliyamo/plant-catalog/internal/model"
)

// PlantRepo encapsulates all database queries related to plants.  It
// depends on a gorm.DB handle which is configured by the database package.
type PlantRepo struct {
	db *gorm.DB
}

// NewPlantRepo constructs a PlantRepo with the provided DB handle.
func NewPlantRepo(db *gorm.DB) *PlantRepo {
	return &PlantRepo{db: db}
}

// ListAll returns every plant in primary key order.  An empty table yields
// an empty, non-nil slice.
func (r *PlantRepo) ListAll(ctx context.Context) ([]*model.Plant, error) {
	out := []*model.Plant{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new plant.  Fields left nil in the input are stored as
// NULL.  The returned record carries the id assigned by the database.
func (r *PlantRepo) Create(ctx context.Context, in model.PlantInput) (*model.Plant, error) {
	p := &model.Plant{Name: in.Name, Image: in.Image, Price: in.Price}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID fetches a plant by its id.  It returns ErrPlantNotFound if no
// row is found.
func (r *PlantRepo) GetByID(ctx context.Context, id uint64) (*model.Plant, error) {
	var p model.Plant
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites only the fields supplied in the input and returns the
// stored record afterwards.  Nil fields keep their current value.  It
// returns ErrPlantNotFound when the row does not exist.
func (r *PlantRepo) Update(ctx context.Context, id uint64, in model.PlantInput) (*model.Plant, error) {
	if in.Empty() {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&model.Plant{}).Where("id = ?", id).Updates(in.Columns())
	if res.Error != nil {
		return nil, res.Error
	}
	// RowsAffected is not a reliable existence check (MySQL reports 0 for
	// unchanged values), so the re-read decides between record and not-found.
	return r.GetByID(ctx, id)
}

// Delete removes the plant with the given id.  ErrPlantNotFound is returned
// when no row was deleted.
func (r *PlantRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.Plant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlantNotFound
	}
	return nil
}
