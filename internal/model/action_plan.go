package model

import "time"

type ActionPlanStatus string

const (
	PlanPending    ActionPlanStatus = "pending"
	PlanInProgress ActionPlanStatus = "in-progress"
	PlanCompleted  ActionPlanStatus = "completed"
)

func IsValidPlanStatus(s ActionPlanStatus) bool {
	switch s {
	case PlanPending, PlanInProgress, PlanCompleted:
		return true
	}
	return false
}

// ActionPlan 由 HOD/管理员依据期望反馈创建的整改计划。
// FinalStatus 不单独存储，由各执行人状态归约得出（见 DeriveFinalStatus）。
// swagger:model ActionPlan
type ActionPlan struct {
	UUIDBase
	DepartmentIDs    []uint    `gorm:"type:json;serializer:json" json:"departmentIds"`
	CategoryIDs      []uint    `gorm:"type:json;serializer:json" json:"categoryIds"`
	ExpectationText  string    `gorm:"type:text;not null" json:"expectationText"`
	ActionPlanText   string    `gorm:"type:text;not null" json:"actionPlanText"`
	Instructions     string    `gorm:"type:text" json:"instructions"`
	AssignedByUserID uint      `gorm:"index;not null" json:"assignedByUserId"`
	TargetDate       time.Time `json:"targetDate"`

	Assignees   []ActionPlanAssignee   `gorm:"foreignKey:ActionPlanID;constraint:OnDelete:CASCADE" json:"assignees"`
	Respondents []ActionPlanRespondent `gorm:"foreignKey:ActionPlanID;constraint:OnDelete:CASCADE" json:"originalSurveyRespondents"`

	// 派生字段，读取时填充
	FinalStatus ActionPlanStatus `gorm:"-" json:"finalStatus"`
}

func (ActionPlan) TableName() string {
	return "action_plans"
}

// ActionPlanAssignee 每个执行人独立维护自己的状态条目。
// swagger:model ActionPlanAssignee
type ActionPlanAssignee struct {
	BaseModel
	ActionPlanID string           `gorm:"index;type:varchar(36);not null" json:"-"`
	UserID       uint             `gorm:"index;not null" json:"userId"`
	Status       ActionPlanStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}

func (ActionPlanAssignee) TableName() string {
	return "action_plan_assignees"
}

// ActionPlanRespondent 计划创建时选中的原始问卷反馈来源。
// swagger:model ActionPlanRespondent
type ActionPlanRespondent struct {
	BaseModel
	ActionPlanID        string `gorm:"index;type:varchar(36);not null" json:"-"`
	UserID              uint   `json:"userId"`
	SurveyID            string `gorm:"type:varchar(36)" json:"surveyId"`
	OriginalExpectation string `gorm:"type:text" json:"originalExpectationText"`
	Category            string `gorm:"size:100" json:"category"`
}

func (ActionPlanRespondent) TableName() string {
	return "action_plan_respondents"
}

// StatusPerAssignee 以 userId 为键展开各执行人状态。
func (p *ActionPlan) StatusPerAssignee() map[uint]ActionPlanStatus {
	m := make(map[uint]ActionPlanStatus, len(p.Assignees))
	for _, a := range p.Assignees {
		m[a.UserID] = a.Status
	}
	return m
}

// DeriveFinalStatus 归约规则：全部完成为 completed；
// 任一人已开始（in-progress 或 completed）为 in-progress；否则 pending。
func DeriveFinalStatus(assignees []ActionPlanAssignee) ActionPlanStatus {
	if len(assignees) == 0 {
		return PlanPending
	}
	completed := 0
	started := false
	for _, a := range assignees {
		switch a.Status {
		case PlanCompleted:
			completed++
			started = true
		case PlanInProgress:
			started = true
		}
	}
	if completed == len(assignees) {
		return PlanCompleted
	}
	if started {
		return PlanInProgress
	}
	return PlanPending
}
