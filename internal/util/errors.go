package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrActionPlanNotFound  = errors.New("action plan not found")
	ErrSipocNotFound       = errors.New("sipoc document not found")
	ErrInvalidRating       = errors.New("rating must be one of 0, 20, 40, 60, 80, 100")
	ErrInvalidSentiment    = errors.New("sentiment must be promoter, passive or detractor")
	ErrSelfReview          = errors.New("a department cannot survey itself")
	ErrReviewerNotMapped   = errors.New("department is not allowed to survey the target department")
	ErrSelfInReviewerList  = errors.New("a department cannot be in its own reviewer list")
	ErrNotAssignee         = errors.New("user is not an assignee of this action plan")
	ErrNoExpectations      = errors.New("no expectations found")
	ErrSummarizerUpstream  = errors.New("summarization service unavailable")
	ErrInvalidPlanStatus   = errors.New("status must be pending, in-progress or completed")
	ErrDepartmentNameTaken = errors.New("department name already exists")
	ErrDepartmentInUse     = errors.New("department still has reviewer mappings")
	ErrCategoryNameTaken   = errors.New("category name already exists")
	ErrEmptyCategoryName   = errors.New("category name must not be empty")
)
