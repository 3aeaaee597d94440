package model

import "time"

// ValidRatings 评分只允许六个离散档位。
var ValidRatings = []int{0, 20, 40, 60, 80, 100}

func IsValidRating(r int) bool {
	for _, v := range ValidRatings {
		if r == v {
			return true
		}
	}
	return false
}

// Survey 一次部门间调查提交。提交后除管理员修正/删除外不可变。
// swagger:model Survey
type Survey struct {
	UUIDBase
	SubmittedByUserID uint      `gorm:"index;not null" json:"submittedByUserId"`
	FromDepartmentID  uint      `gorm:"index;not null" json:"fromDepartmentId"`
	ToDepartmentID    uint      `gorm:"index;not null" json:"toDepartmentId"`
	SubmittedAt       time.Time `json:"submittedAt"`

	Responses []SurveyResponse `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}

// SurveyResponse 问卷中单个类别的评分与期望文本。
// Category 在写入时已做规范化（见 util.NormalizeCategory）。
// swagger:model SurveyResponse
type SurveyResponse struct {
	BaseModel
	SurveyID    string `gorm:"index;type:varchar(36);not null" json:"-"`
	Category    string `gorm:"size:100;index;not null" json:"category"`
	Rating      int    `gorm:"not null" json:"rating"`
	Expectation string `gorm:"type:text" json:"expectation"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// ResponseBody 是对外 responses map 的值类型。
type ResponseBody struct {
	Rating      int    `json:"rating"`
	Expectation string `json:"expectation"`
}

// ResponseMap 以类别为键还原客户端提交时的 map 形状。
func (s *Survey) ResponseMap() map[string]ResponseBody {
	m := make(map[string]ResponseBody, len(s.Responses))
	for _, r := range s.Responses {
		m[r.Category] = ResponseBody{Rating: r.Rating, Expectation: r.Expectation}
	}
	return m
}
