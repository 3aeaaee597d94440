package service

import (
	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Activity *ActivityService
}

func NewUserService(userRepo *repository.UserRepository, activity *ActivityService) *UserService {
	return &UserService{UserRepo: userRepo, Activity: activity}
}

func (s *UserService) List(departmentID uint, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(departmentID, page, limit)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UserUpdate struct {
	Name         *string         `json:"name"`
	Role         *model.UserRole `json:"role"`
	DepartmentID *uint           `json:"departmentId"`
	Disabled     *bool           `json:"disabled"`
	Password     *string         `json:"password"`
}

// AdminUpdate 管理员维护用户：改名、调角色/部门、停用、重置密码。
func (s *UserService) AdminUpdate(adminUserID, id uint, update *UserUpdate) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Role != nil {
		switch *update.Role {
		case model.RoleUser, model.RoleHOD, model.RoleAdmin:
			user.Role = *update.Role
		default:
			return nil, util.ErrPermissionDenied
		}
	}
	if update.DepartmentID != nil {
		user.DepartmentID = update.DepartmentID
	}
	if update.Disabled != nil {
		user.Disabled = *update.Disabled
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	s.Activity.Record(adminUserID, "update", "user", "", user.Email)
	return user, nil
}

func (s *UserService) Delete(adminUserID, id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.UserRepo.Delete(id); err != nil {
		return err
	}
	s.Activity.Record(adminUserID, "delete", "user", "", user.Email)
	return nil
}
