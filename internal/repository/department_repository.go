package repository

import (
	"icsq_backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	DB *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{DB: db}
}

func (r *DepartmentRepository) Create(dept *model.Department) error {
	return r.DB.Create(dept).Error
}

func (r *DepartmentRepository) FindByID(id uint) (*model.Department, error) {
	var dept model.Department
	err := r.DB.First(&dept, id).Error
	return &dept, err
}

func (r *DepartmentRepository) FindByName(name string) (*model.Department, error) {
	var dept model.Department
	// 名称按约定不区分大小写
	err := r.DB.Where("LOWER(name) = LOWER(?)", name).First(&dept).Error
	return &dept, err
}

func (r *DepartmentRepository) FindAll() ([]model.Department, error) {
	var depts []model.Department
	err := r.DB.Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *DepartmentRepository) Update(dept *model.Department) error {
	return r.DB.Save(dept).Error
}

// Delete 硬删除映射，软删除部门本身。历史问卷不级联，保留原部门ID。
func (r *DepartmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ? OR reviewer_department_id = ?", id, id).
			Delete(&model.DepartmentMapping{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Department{}, id).Error
	})
}

func (r *DepartmentRepository) FindReviewerIDs(departmentID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.DepartmentMapping{}).
		Where("department_id = ?", departmentID).
		Pluck("reviewer_department_id", &ids).Error
	return ids, err
}

// ReplaceReviewers 整体替换某部门的 reviewer 列表。
func (r *DepartmentRepository) ReplaceReviewers(departmentID uint, reviewerIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", departmentID).
			Delete(&model.DepartmentMapping{}).Error; err != nil {
			return err
		}
		for _, rid := range reviewerIDs {
			m := model.DepartmentMapping{DepartmentID: departmentID, ReviewerDepartmentID: rid}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DepartmentRepository) IsReviewerMapped(departmentID, reviewerID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.DepartmentMapping{}).
		Where("department_id = ? AND reviewer_department_id = ?", departmentID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *DepartmentRepository) HasMappings(departmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.DepartmentMapping{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}
