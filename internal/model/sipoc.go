package model

// SipocDocument 部门的 SIPOC 流程说明，流程图经对象存储上传后挂 URL。
// swagger:model SipocDocument
type SipocDocument struct {
	UUIDBase
	DepartmentID     uint     `gorm:"index;not null" json:"departmentId"`
	Suppliers        []string `gorm:"type:json;serializer:json" json:"suppliers"`
	Inputs           []string `gorm:"type:json;serializer:json" json:"inputs"`
	Process          []string `gorm:"type:json;serializer:json" json:"process"`
	Outputs          []string `gorm:"type:json;serializer:json" json:"outputs"`
	Customers        []string `gorm:"type:json;serializer:json" json:"customers"`
	DiagramURL       string   `gorm:"size:255" json:"diagramUrl"`
	UploadedByUserID uint     `gorm:"index" json:"uploadedByUserId"`
}

func (SipocDocument) TableName() string {
	return "sipoc_documents"
}
