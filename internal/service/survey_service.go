package service

import (
	"context"
	"sort"
	"time"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"
	"icsq_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SurveyService struct {
	SurveyRepo     *repository.SurveyRepository
	DepartmentRepo *repository.DepartmentRepository
	ScoreService   *ScoreService
	Activity       *ActivityService
}

func NewSurveyService(surveyRepo *repository.SurveyRepository, departmentRepo *repository.DepartmentRepository, scoreService *ScoreService, activity *ActivityService) *SurveyService {
	return &SurveyService{
		SurveyRepo:     surveyRepo,
		DepartmentRepo: departmentRepo,
		ScoreService:   scoreService,
		Activity:       activity,
	}
}

// SurveySubmission 客户端提交的问卷，responses 以类别名为键。
type SurveySubmission struct {
	ToDepartmentID uint                          `json:"toDepartmentId" binding:"required"`
	Responses      map[string]model.ResponseBody `json:"responses" binding:"required"`
}

// SurveyView 对外的问卷形状，responses 还原为 map。
type SurveyView struct {
	ID                string                        `json:"id"`
	SubmittedByUserID uint                          `json:"submittingUserId"`
	FromDepartmentID  uint                          `json:"fromDepartmentId"`
	ToDepartmentID    uint                          `json:"toDepartmentId"`
	Responses         map[string]model.ResponseBody `json:"responses"`
	SubmittedAt       time.Time                     `json:"submittedAt"`
}

func toView(s *model.Survey) SurveyView {
	return SurveyView{
		ID:                s.ID,
		SubmittedByUserID: s.SubmittedByUserID,
		FromDepartmentID:  s.FromDepartmentID,
		ToDepartmentID:    s.ToDepartmentID,
		Responses:         s.ResponseMap(),
		SubmittedAt:       s.SubmittedAt,
	}
}

// buildResponses 规范化类别键并校验评分档位。同一规范化类别重复提交时
// 保留字典序靠后的覆盖（map 展开顺序不可依赖，先排序保证确定性）。
func buildResponses(responses map[string]model.ResponseBody) ([]model.SurveyResponse, error) {
	keys := make([]string, 0, len(responses))
	for k := range responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byCategory := make(map[string]model.SurveyResponse)
	var order []string
	for _, key := range keys {
		body := responses[key]
		if !model.IsValidRating(body.Rating) {
			return nil, util.ErrInvalidRating
		}
		category := util.NormalizeCategory(key)
		if category == "" {
			continue
		}
		if _, ok := byCategory[category]; !ok {
			order = append(order, category)
		}
		byCategory[category] = model.SurveyResponse{
			Category:    category,
			Rating:      body.Rating,
			Expectation: body.Expectation,
		}
	}

	rows := make([]model.SurveyResponse, 0, len(order))
	for _, category := range order {
		rows = append(rows, byCategory[category])
	}
	return rows, nil
}

// Submit 校验部门映射后落库。提交人必须属于某个部门，且该部门
// 在目标部门的 reviewer 列表里。
func (s *SurveyService) Submit(ctx context.Context, userID, fromDepartmentID uint, submission *SurveySubmission) (*SurveyView, error) {
	if fromDepartmentID == 0 {
		return nil, util.ErrPermissionDenied
	}
	if fromDepartmentID == submission.ToDepartmentID {
		return nil, util.ErrSelfReview
	}
	if _, err := s.DepartmentRepo.FindByID(submission.ToDepartmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrDepartmentNotFound
		}
		return nil, err
	}

	mapped, err := s.DepartmentRepo.IsReviewerMapped(submission.ToDepartmentID, fromDepartmentID)
	if err != nil {
		return nil, err
	}
	if !mapped {
		return nil, util.ErrReviewerNotMapped
	}

	rows, err := buildResponses(submission.Responses)
	if err != nil {
		return nil, err
	}

	survey := &model.Survey{
		SubmittedByUserID: userID,
		FromDepartmentID:  fromDepartmentID,
		ToDepartmentID:    submission.ToDepartmentID,
		SubmittedAt:       time.Now(),
		Responses:         rows,
	}
	if err := s.SurveyRepo.Create(survey); err != nil {
		return nil, err
	}

	monitoring.SurveySubmissions.Inc()
	s.ScoreService.InvalidateCache(ctx)
	s.Activity.Record(userID, "create", "survey", survey.ID, "")

	view := toView(survey)
	return &view, nil
}

func (s *SurveyService) Get(id string) (*SurveyView, error) {
	survey, err := s.SurveyRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}
	view := toView(survey)
	return &view, nil
}

func (s *SurveyService) List(toDepartmentID, fromDepartmentID uint, page, limit int) ([]SurveyView, int64, error) {
	surveys, total, err := s.SurveyRepo.List(toDepartmentID, fromDepartmentID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]SurveyView, 0, len(surveys))
	for i := range surveys {
		views = append(views, toView(&surveys[i]))
	}
	return views, total, nil
}

// AdminUpdate 管理员修正问卷的类别条目，这是提交后唯一允许的变更。
func (s *SurveyService) AdminUpdate(ctx context.Context, adminUserID uint, id string, responses map[string]model.ResponseBody) (*SurveyView, error) {
	if _, err := s.SurveyRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}

	rows, err := buildResponses(responses)
	if err != nil {
		return nil, err
	}
	if err := s.SurveyRepo.ReplaceResponses(id, rows); err != nil {
		return nil, err
	}

	s.ScoreService.InvalidateCache(ctx)
	s.Activity.Record(adminUserID, "update", "survey", id, "")
	return s.Get(id)
}

func (s *SurveyService) AdminDelete(ctx context.Context, adminUserID uint, id string) error {
	if _, err := s.SurveyRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrSurveyNotFound
		}
		return err
	}
	if err := s.SurveyRepo.Delete(id); err != nil {
		return err
	}
	s.ScoreService.InvalidateCache(ctx)
	s.Activity.Record(adminUserID, "delete", "survey", id, "")
	return nil
}
