package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"

	"gorm.io/gorm"
)

// 流程图只接受图片和 PDF。
var allowedDiagramExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".pdf":  true,
}

type SipocService struct {
	SipocRepo      *repository.SipocRepository
	DepartmentRepo *repository.DepartmentRepository
	Storage        *StorageService
	Activity       *ActivityService
}

func NewSipocService(sipocRepo *repository.SipocRepository, departmentRepo *repository.DepartmentRepository, storage *StorageService, activity *ActivityService) *SipocService {
	return &SipocService{
		SipocRepo:      sipocRepo,
		DepartmentRepo: departmentRepo,
		Storage:        storage,
		Activity:       activity,
	}
}

func (s *SipocService) Create(actorUserID uint, doc *model.SipocDocument) error {
	if _, err := s.DepartmentRepo.FindByID(doc.DepartmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrDepartmentNotFound
		}
		return err
	}
	doc.UploadedByUserID = actorUserID
	if err := s.SipocRepo.Create(doc); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "create", "sipoc", doc.ID, "")
	return nil
}

func (s *SipocService) Get(id string) (*model.SipocDocument, error) {
	doc, err := s.SipocRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSipocNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *SipocService) List(departmentID uint) ([]model.SipocDocument, error) {
	return s.SipocRepo.List(departmentID)
}

func (s *SipocService) Update(actorUserID uint, doc *model.SipocDocument) error {
	existing, err := s.Get(doc.ID)
	if err != nil {
		return err
	}
	doc.DiagramURL = existing.DiagramURL
	doc.UploadedByUserID = existing.UploadedByUserID
	if err := s.SipocRepo.Update(doc); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "update", "sipoc", doc.ID, "")
	return nil
}

func (s *SipocService) Delete(actorUserID uint, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.SipocRepo.Delete(id); err != nil {
		return err
	}
	s.Activity.Record(actorUserID, "delete", "sipoc", id, "")
	return nil
}

// AttachDiagram 上传流程图并把 URL 挂到文档上。
func (s *SipocService) AttachDiagram(ctx context.Context, actorUserID uint, id, originalName string, reader io.Reader, size int64, contentType string) (*model.SipocDocument, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedDiagramExts[ext] {
		return nil, fmt.Errorf("unsupported diagram file type %q", ext)
	}

	filename := fmt.Sprintf("sipoc/%s/%s%s", doc.ID, model.GenerateUUID(), ext)
	url, err := s.Storage.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	doc.DiagramURL = url
	if err := s.SipocRepo.Update(doc); err != nil {
		return nil, err
	}
	s.Activity.Record(actorUserID, "update", "sipoc_diagram", doc.ID, url)
	return doc, nil
}
