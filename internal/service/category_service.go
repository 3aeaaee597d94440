package service

import (
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
	Activity     *ActivityService
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, activity *ActivityService) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo, Activity: activity}
}

// Create 类别名在入库前做同一套规范化，调查提交时的 map 键才能对得上。
func (s *CategoryService) Create(actorUserID uint, category *model.Category) error {
	category.Name = util.NormalizeCategory(category.Name)
	if category.Name == "" {
		return util.ErrEmptyCategoryName
	}
	if _, err := s.CategoryRepo.FindByName(category.Name); err == nil {
		return util.ErrCategoryNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "create", "category", strconv.Itoa(int(category.ID)), category.Name)
	return nil
}

func (s *CategoryService) Get(id uint) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CategoryService) Update(actorUserID uint, category *model.Category) error {
	if _, err := s.Get(category.ID); err != nil {
		return err
	}
	category.Name = util.NormalizeCategory(category.Name)
	if err := s.CategoryRepo.Update(category); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "update", "category", strconv.Itoa(int(category.ID)), category.Name)
	return nil
}

func (s *CategoryService) Delete(actorUserID, id uint) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.CategoryRepo.Delete(id); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "delete", "category", strconv.Itoa(int(id)), category.Name)
	return nil
}
