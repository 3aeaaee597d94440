package repository

import (
	"icsq_backend/internal/model"

	"gorm.io/gorm"
)

type SipocRepository struct {
	DB *gorm.DB
}

func NewSipocRepository(db *gorm.DB) *SipocRepository {
	return &SipocRepository{DB: db}
}

func (r *SipocRepository) Create(doc *model.SipocDocument) error {
	return r.DB.Create(doc).Error
}

func (r *SipocRepository) FindByID(id string) (*model.SipocDocument, error) {
	var doc model.SipocDocument
	err := r.DB.Where("id = ?", id).First(&doc).Error
	return &doc, err
}

func (r *SipocRepository) List(departmentID uint) ([]model.SipocDocument, error) {
	query := r.DB.Model(&model.SipocDocument{})
	if departmentID != 0 {
		query = query.Where("department_id = ?", departmentID)
	}
	var docs []model.SipocDocument
	err := query.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *SipocRepository) Update(doc *model.SipocDocument) error {
	return r.DB.Save(doc).Error
}

func (r *SipocRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.SipocDocument{}).Error
}
