package service

import (
	"time"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"

	"gorm.io/gorm"
)

type ActionPlanService struct {
	PlanRepo *repository.ActionPlanRepository
	UserRepo *repository.UserRepository
	Activity *ActivityService
}

func NewActionPlanService(planRepo *repository.ActionPlanRepository, userRepo *repository.UserRepository, activity *ActivityService) *ActionPlanService {
	return &ActionPlanService{PlanRepo: planRepo, UserRepo: userRepo, Activity: activity}
}

type RespondentInput struct {
	UserID              uint   `json:"userId"`
	SurveyID            string `json:"surveyId"`
	OriginalExpectation string `json:"originalExpectationText"`
	Category            string `json:"category"`
}

type ActionPlanInput struct {
	DepartmentIDs     []uint            `json:"departmentIds" binding:"required"`
	CategoryIDs       []uint            `json:"categoryIds" binding:"required"`
	ExpectationText   string            `json:"expectationText" binding:"required"`
	ActionPlanText    string            `json:"actionPlanText" binding:"required"`
	Instructions      string            `json:"instructions"`
	AssignedToUserIDs []uint            `json:"assignedToUserIds" binding:"required"`
	TargetDate        time.Time         `json:"targetDate" binding:"required"`
	Respondents       []RespondentInput `json:"originalSurveyRespondents"`
}

// ActionPlanView 读取形状：statusPerAssignee 展开为 map，finalStatus 为派生值。
type ActionPlanView struct {
	model.ActionPlan
	StatusPerAssignee map[uint]model.ActionPlanStatus `json:"statusPerAssignee"`
	AssignedToUserIDs []uint                          `json:"assignedToUserIds"`
}

func planView(p *model.ActionPlan) ActionPlanView {
	p.FinalStatus = model.DeriveFinalStatus(p.Assignees)
	ids := make([]uint, 0, len(p.Assignees))
	for _, a := range p.Assignees {
		ids = append(ids, a.UserID)
	}
	return ActionPlanView{
		ActionPlan:        *p,
		StatusPerAssignee: p.StatusPerAssignee(),
		AssignedToUserIDs: ids,
	}
}

// Create 每个执行人的状态条目初始化为 pending。
func (s *ActionPlanService) Create(creatorUserID uint, input *ActionPlanInput) (*ActionPlanView, error) {
	if len(input.AssignedToUserIDs) == 0 {
		return nil, util.ErrNotAssignee
	}

	users, err := s.UserRepo.FindByIDs(input.AssignedToUserIDs)
	if err != nil {
		return nil, err
	}
	if len(users) != len(uniqueIDs(input.AssignedToUserIDs)) {
		return nil, util.ErrUserNotFound
	}

	plan := &model.ActionPlan{
		DepartmentIDs:    input.DepartmentIDs,
		CategoryIDs:      input.CategoryIDs,
		ExpectationText:  input.ExpectationText,
		ActionPlanText:   input.ActionPlanText,
		Instructions:     input.Instructions,
		AssignedByUserID: creatorUserID,
		TargetDate:       input.TargetDate,
	}
	for _, uid := range uniqueIDs(input.AssignedToUserIDs) {
		plan.Assignees = append(plan.Assignees, model.ActionPlanAssignee{
			UserID: uid,
			Status: model.PlanPending,
		})
	}
	for _, r := range input.Respondents {
		plan.Respondents = append(plan.Respondents, model.ActionPlanRespondent{
			UserID:              r.UserID,
			SurveyID:            r.SurveyID,
			OriginalExpectation: r.OriginalExpectation,
			Category:            util.NormalizeCategory(r.Category),
		})
	}

	if err := s.PlanRepo.Create(plan); err != nil {
		return nil, err
	}
	s.Activity.Record(creatorUserID, "create", "action_plan", plan.ID, "")

	view := planView(plan)
	return &view, nil
}

func (s *ActionPlanService) Get(id string) (*ActionPlanView, error) {
	plan, err := s.PlanRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrActionPlanNotFound
		}
		return nil, err
	}
	view := planView(plan)
	return &view, nil
}

func (s *ActionPlanService) List(assigneeUserID, departmentID uint, status model.ActionPlanStatus) ([]ActionPlanView, error) {
	plans, err := s.PlanRepo.List(assigneeUserID, departmentID)
	if err != nil {
		return nil, err
	}
	views := make([]ActionPlanView, 0, len(plans))
	for i := range plans {
		view := planView(&plans[i])
		if status != "" && view.FinalStatus != status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

type ActionPlanUpdate struct {
	ID                string     `json:"id"`
	ExpectationText   *string    `json:"expectationText"`
	ActionPlanText    *string    `json:"actionPlanText"`
	Instructions      *string    `json:"instructions"`
	TargetDate        *time.Time `json:"targetDate"`
	AssignedToUserIDs []uint     `json:"assignedToUserIds"`
}

func (s *ActionPlanService) Update(updaterUserID uint, update *ActionPlanUpdate) (*ActionPlanView, error) {
	plan, err := s.PlanRepo.FindByID(update.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrActionPlanNotFound
		}
		return nil, err
	}

	if update.ExpectationText != nil {
		plan.ExpectationText = *update.ExpectationText
	}
	if update.ActionPlanText != nil {
		plan.ActionPlanText = *update.ActionPlanText
	}
	if update.Instructions != nil {
		plan.Instructions = *update.Instructions
	}
	if update.TargetDate != nil {
		plan.TargetDate = *update.TargetDate
	}
	if update.AssignedToUserIDs != nil {
		// 留任的执行人保留既有状态，新增的初始化为 pending，移除的删掉
		existing := make(map[uint]model.ActionPlanAssignee)
		for _, a := range plan.Assignees {
			existing[a.UserID] = a
		}
		var next []model.ActionPlanAssignee
		for _, uid := range uniqueIDs(update.AssignedToUserIDs) {
			status := model.PlanPending
			if a, ok := existing[uid]; ok {
				status = a.Status
			}
			next = append(next, model.ActionPlanAssignee{UserID: uid, Status: status})
		}
		if err := s.PlanRepo.ReplaceAssignees(plan.ID, next); err != nil {
			return nil, err
		}
		plan.Assignees = nil
	}

	if err := s.PlanRepo.Update(plan); err != nil {
		return nil, err
	}
	s.Activity.Record(updaterUserID, "update", "action_plan", plan.ID, "")
	return s.Get(plan.ID)
}

// BulkUpdateResult 批量更新不是原子操作：数据库只保证单条原子性，
// 因此结果按条目返回成败，调用方自行处理部分失败。
type BulkUpdateResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *ActionPlanService) BulkUpdate(updaterUserID uint, updates []ActionPlanUpdate) []BulkUpdateResult {
	results := make([]BulkUpdateResult, 0, len(updates))
	for i := range updates {
		result := BulkUpdateResult{ID: updates[i].ID, OK: true}
		if _, err := s.Update(updaterUserID, &updates[i]); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// UpdateAssigneeStatus 执行人只能改自己的状态条目。
func (s *ActionPlanService) UpdateAssigneeStatus(userID uint, planID string, status model.ActionPlanStatus) (*ActionPlanView, error) {
	if !model.IsValidPlanStatus(status) {
		return nil, util.ErrInvalidPlanStatus
	}
	if err := s.PlanRepo.UpdateAssigneeStatus(planID, userID, status); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNotAssignee
		}
		return nil, err
	}
	s.Activity.Record(userID, "update", "action_plan_status", planID, string(status))
	return s.Get(planID)
}

// Delete 硬删除，仅管理员。
func (s *ActionPlanService) Delete(adminUserID uint, id string) error {
	if _, err := s.PlanRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrActionPlanNotFound
		}
		return err
	}
	if err := s.PlanRepo.Delete(id); err != nil {
		return err
	}
	s.Activity.Record(adminUserID, "delete", "action_plan", id, "")
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
