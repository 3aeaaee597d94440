package repository

import (
	"icsq_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(entry *model.ActivityLog) error {
	return r.DB.Create(entry).Error
}

func (r *ActivityLogRepository) List(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	query := r.DB.Model(&model.ActivityLog{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.ActivityLog
	err := query.Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}
