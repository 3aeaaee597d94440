package repository

import (
	"icsq_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.Preload("Responses").Where("id = ?", id).First(&survey).Error
	return &survey, err
}

func (r *SurveyRepository) List(toDepartmentID, fromDepartmentID uint, page, limit int) ([]model.Survey, int64, error) {
	query := r.DB.Model(&model.Survey{})
	if toDepartmentID != 0 {
		query = query.Where("to_department_id = ?", toDepartmentID)
	}
	if fromDepartmentID != 0 {
		query = query.Where("from_department_id = ?", fromDepartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []model.Survey
	err := query.Preload("Responses").
		Offset((page - 1) * limit).Limit(limit).
		Order("submitted_at DESC").
		Find(&surveys).Error
	return surveys, total, err
}

// ReplaceResponses 管理员修正问卷时整体替换类别条目。
func (r *SurveyRepository) ReplaceResponses(surveyID string, responses []model.SurveyResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("survey_id = ?", surveyID).
			Delete(&model.SurveyResponse{}).Error; err != nil {
			return err
		}
		for i := range responses {
			responses[i].SurveyID = surveyID
			if err := tx.Create(&responses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SurveyRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("survey_id = ?", id).
			Delete(&model.SurveyResponse{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Survey{}).Error
	})
}

// ScoreRows 取全部评分行（问卷维度信息随行展开），聚合在服务层完成。
func (r *SurveyRepository) ScoreRows() ([]model.ScoreRow, error) {
	var rows []model.ScoreRow
	err := r.DB.Table("survey_responses").
		Select(`survey_responses.survey_id,
			surveys.to_department_id,
			surveys.from_department_id,
			survey_responses.category,
			survey_responses.rating`).
		Joins("JOIN surveys ON surveys.id = survey_responses.survey_id AND surveys.deleted_at IS NULL").
		Where("survey_responses.deleted_at IS NULL").
		Order("survey_responses.id ASC").
		Scan(&rows).Error
	return rows, err
}

// ExpectationRows 取目标部门的非空期望文本，随行带来源部门与提交人。
func (r *SurveyRepository) ExpectationRows(toDepartmentID uint, category string) ([]model.ExpectationRow, error) {
	query := r.DB.Table("survey_responses").
		Select(`survey_responses.survey_id,
			survey_responses.category,
			survey_responses.expectation,
			survey_responses.rating,
			surveys.from_department_id,
			departments.name AS from_department,
			surveys.submitted_by_user_id AS user_id,
			users.name AS user_name`).
		Joins("JOIN surveys ON surveys.id = survey_responses.survey_id AND surveys.deleted_at IS NULL").
		Joins("LEFT JOIN departments ON departments.id = surveys.from_department_id").
		Joins("LEFT JOIN users ON users.id = surveys.submitted_by_user_id").
		Where("survey_responses.deleted_at IS NULL").
		Where("surveys.to_department_id = ?", toDepartmentID).
		Where("TRIM(survey_responses.expectation) <> ''")
	if category != "" {
		query = query.Where("survey_responses.category = ?", category)
	}

	var rows []model.ExpectationRow
	err := query.Order("survey_responses.id ASC").Scan(&rows).Error
	return rows, err
}

// SentimentRows 按离散评分档位取全部匹配的期望文本，跨类别。
func (r *SurveyRepository) SentimentRows(ratings []int) ([]model.ExpectationRow, error) {
	var rows []model.ExpectationRow
	err := r.DB.Table("survey_responses").
		Select(`survey_responses.survey_id,
			survey_responses.category,
			survey_responses.expectation,
			survey_responses.rating,
			surveys.from_department_id,
			departments.name AS from_department,
			surveys.submitted_by_user_id AS user_id,
			users.name AS user_name`).
		Joins("JOIN surveys ON surveys.id = survey_responses.survey_id AND surveys.deleted_at IS NULL").
		Joins("LEFT JOIN departments ON departments.id = surveys.from_department_id").
		Joins("LEFT JOIN users ON users.id = surveys.submitted_by_user_id").
		Where("survey_responses.deleted_at IS NULL").
		Where("survey_responses.rating IN ?", ratings).
		Where("TRIM(survey_responses.expectation) <> ''").
		Order("survey_responses.id ASC").
		Scan(&rows).Error
	return rows, err
}
