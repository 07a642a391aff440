package repository

import (
	"context"

	"gorm.io/gorm"

	"oslsr/backend/internal/model"
)

// LgaRepository LGA 数据访问接口
type LgaRepository interface {
	List(ctx context.Context) ([]model.Lga, error)
	GetByID(ctx context.Context, id string) (*model.Lga, error)
}

// lgaRepo LgaRepository 的 GORM 实现
type lgaRepo struct {
	db *gorm.DB
}

// NewLgaRepo 创建 LgaRepository 实例
func NewLgaRepo(db *gorm.DB) LgaRepository {
	return &lgaRepo{db: db}
}

func (r *lgaRepo) List(ctx context.Context) ([]model.Lga, error) {
	var lgas []model.Lga
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&lgas).Error
	if err != nil {
		return nil, err
	}
	return lgas, nil
}

func (r *lgaRepo) GetByID(ctx context.Context, id string) (*model.Lga, error) {
	var lga model.Lga
	err := r.db.WithContext(ctx).
		Where("lga_id = ?", id).
		First(&lga).Error
	if err != nil {
		return nil, err
	}
	return &lga, nil
}
