package model

// ActivityLog 尽力而为的审计日志，写入失败不影响主请求。
// swagger:model ActivityLog
type ActivityLog struct {
	BaseModel
	UserID   uint   `gorm:"index" json:"userId"`
	Action   string `gorm:"size:50;not null" json:"action"` // create / update / delete / login / logout
	Entity   string `gorm:"size:50;not null" json:"entity"`
	EntityID string `gorm:"size:64" json:"entityId"`
	Detail   string `gorm:"type:text" json:"detail"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
