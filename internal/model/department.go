package model

// Department 被调查的组织单元。名称按约定唯一（不区分大小写）。
// 删除部门不会级联删除历史问卷，旧记录保留原部门ID。
// swagger:model Department
type Department struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Department) TableName() string {
	return "departments"
}

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}

// DepartmentMapping 声明哪些部门可以对目标部门发起调查。
// 不变量：reviewer 列表不包含部门自身（服务层写入时校验）。
// swagger:model DepartmentMapping
type DepartmentMapping struct {
	BaseModel
	DepartmentID         uint `gorm:"index:idx_dept_reviewer,unique" json:"departmentId"`
	ReviewerDepartmentID uint `gorm:"index:idx_dept_reviewer,unique" json:"reviewerDepartmentId"`
}

func (DepartmentMapping) TableName() string {
	return "department_mappings"
}
