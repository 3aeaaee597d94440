package service

import (
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"

	"gorm.io/gorm"
)

type DepartmentService struct {
	DepartmentRepo *repository.DepartmentRepository
	Activity       *ActivityService
}

func NewDepartmentService(departmentRepo *repository.DepartmentRepository, activity *ActivityService) *DepartmentService {
	return &DepartmentService{DepartmentRepo: departmentRepo, Activity: activity}
}

func (s *DepartmentService) Create(actorUserID uint, dept *model.Department) error {
	if _, err := s.DepartmentRepo.FindByName(dept.Name); err == nil {
		return util.ErrDepartmentNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	if err := s.DepartmentRepo.Create(dept); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "create", "department", strconv.Itoa(int(dept.ID)), dept.Name)
	return nil
}

func (s *DepartmentService) Get(id uint) (*model.Department, error) {
	dept, err := s.DepartmentRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) List() ([]model.Department, error) {
	return s.DepartmentRepo.FindAll()
}

func (s *DepartmentService) Update(actorUserID uint, dept *model.Department) error {
	if _, err := s.Get(dept.ID); err != nil {
		return err
	}
	if err := s.DepartmentRepo.Update(dept); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "update", "department", strconv.Itoa(int(dept.ID)), dept.Name)
	return nil
}

// Delete 软删除部门，历史问卷不受影响（无级联）。
func (s *DepartmentService) Delete(actorUserID, id uint) error {
	dept, err := s.Get(id)
	if err != nil {
		return err
	}
	mapped, err := s.DepartmentRepo.HasMappings(id)
	if err != nil {
		return err
	}
	if mapped {
		return util.ErrDepartmentInUse
	}
	if err := s.DepartmentRepo.Delete(id); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "delete", "department", strconv.Itoa(int(id)), dept.Name)
	return nil
}

// Reviewers 目标部门允许的调查方部门列表。
func (s *DepartmentService) Reviewers(departmentID uint) ([]uint, error) {
	if _, err := s.Get(departmentID); err != nil {
		return nil, err
	}
	ids, err := s.DepartmentRepo.FindReviewerIDs(departmentID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// SetReviewers 整体替换 reviewer 列表。部门不能出现在自己的列表里。
func (s *DepartmentService) SetReviewers(actorUserID, departmentID uint, reviewerIDs []uint) error {
	if _, err := s.Get(departmentID); err != nil {
		return err
	}
	unique := make(map[uint]bool, len(reviewerIDs))
	var cleaned []uint
	for _, rid := range reviewerIDs {
		if rid == departmentID {
			return util.ErrSelfInReviewerList
		}
		if unique[rid] {
			continue
		}
		if _, err := s.Get(rid); err != nil {
			return err
		}
		unique[rid] = true
		cleaned = append(cleaned, rid)
	}
	if err := s.DepartmentRepo.ReplaceReviewers(departmentID, cleaned); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "update", "department_mapping", strconv.Itoa(int(departmentID)), "")
	return nil
}
