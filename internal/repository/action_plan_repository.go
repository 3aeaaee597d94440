package repository

import (
	"icsq_backend/internal/model"

	"gorm.io/gorm"
)

type ActionPlanRepository struct {
	DB *gorm.DB
}

func NewActionPlanRepository(db *gorm.DB) *ActionPlanRepository {
	return &ActionPlanRepository{DB: db}
}

func (r *ActionPlanRepository) Create(plan *model.ActionPlan) error {
	return r.DB.Create(plan).Error
}

func (r *ActionPlanRepository) FindByID(id string) (*model.ActionPlan, error) {
	var plan model.ActionPlan
	err := r.DB.Preload("Assignees").Preload("Respondents").
		Where("id = ?", id).First(&plan).Error
	return &plan, err
}

// List 可按部门、执行人、派生状态过滤。状态过滤在内存中做，
// 因为 finalStatus 是按执行人状态归约出来的派生值。
func (r *ActionPlanRepository) List(assigneeUserID uint, departmentID uint) ([]model.ActionPlan, error) {
	var plans []model.ActionPlan
	err := r.listQuery(assigneeUserID, departmentID).Find(&plans).Error
	return plans, err
}

func (r *ActionPlanRepository) listQuery(assigneeUserID uint, departmentID uint) *gorm.DB {
	query := r.DB.Model(&model.ActionPlan{}).
		Preload("Assignees").Preload("Respondents")

	if assigneeUserID != 0 {
		query = query.Joins(
			"JOIN action_plan_assignees apa ON apa.action_plan_id = action_plans.id AND apa.user_id = ? AND apa.deleted_at IS NULL",
			assigneeUserID,
		)
	}
	if departmentID != 0 {
		// JSON_CONTAINS 的第二个参数必须是 JSON 值，整型绑定会报 3146
		query = query.Where("JSON_CONTAINS(department_ids, CAST(? AS JSON))", departmentID)
	}

	return query.Order("action_plans.created_at DESC")
}

func (r *ActionPlanRepository) Update(plan *model.ActionPlan) error {
	return r.DB.Save(plan).Error
}

// ReplaceAssignees 整体替换执行人条目（保留未变动用户的既有状态由调用方负责）。
func (r *ActionPlanRepository) ReplaceAssignees(planID string, assignees []model.ActionPlanAssignee) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("action_plan_id = ?", planID).
			Delete(&model.ActionPlanAssignee{}).Error; err != nil {
			return err
		}
		for i := range assignees {
			assignees[i].ID = 0
			assignees[i].ActionPlanID = planID
			if err := tx.Create(&assignees[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ActionPlanRepository) UpdateAssigneeStatus(planID string, userID uint, status model.ActionPlanStatus) error {
	result := r.DB.Model(&model.ActionPlanAssignee{}).
		Where("action_plan_id = ? AND user_id = ?", planID, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 管理员专用的硬删除，连同执行人与反馈来源行一起移除。
func (r *ActionPlanRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("action_plan_id = ?", id).
			Delete(&model.ActionPlanAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("action_plan_id = ?", id).
			Delete(&model.ActionPlanRespondent{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", id).Delete(&model.ActionPlan{}).Error
	})
}
