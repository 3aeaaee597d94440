package model

import (
	"time"
)

type UserRole string

// 角色集合是权限判断的唯一依据：普通成员、部门负责人（HOD）、管理员。
const (
	RoleUser  UserRole = "user"
	RoleHOD   UserRole = "hod"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;unique;not null" json:"email"`
	Password     string   `gorm:"size:100;not null" json:"-"`
	Role         UserRole `gorm:"type:enum('user','hod','admin');default:'user'" json:"role"`
	DepartmentID *uint    `gorm:"index" json:"departmentId"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
