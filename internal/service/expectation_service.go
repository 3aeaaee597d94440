package service

import (
	"strconv"
	"strings"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"
)

type ExpectationService struct {
	SurveyRepo     *repository.SurveyRepository
	DepartmentRepo *repository.DepartmentRepository
}

func NewExpectationService(surveyRepo *repository.SurveyRepository, departmentRepo *repository.DepartmentRepository) *ExpectationService {
	return &ExpectationService{SurveyRepo: surveyRepo, DepartmentRepo: departmentRepo}
}

// RollupExpectations 非空期望文本按 类别 → 来源部门 → 提交人 分组，
// 各层冒泡计数。没有符合条件期望的类别整个省略，不输出空数组。
func RollupExpectations(rows []model.ExpectationRow) []model.ExpectationCategory {
	type userAgg struct {
		name         string
		expectations []string
		order        int
	}
	type deptAgg struct {
		name  string
		users map[uint]*userAgg
		uSeen []uint
		order int
	}
	type catAgg struct {
		depts map[uint]*deptAgg
		dSeen []uint
		order int
	}

	cats := make(map[string]*catAgg)
	var cSeen []string

	for _, row := range rows {
		if strings.TrimSpace(row.Expectation) == "" {
			continue
		}

		cat, ok := cats[row.Category]
		if !ok {
			cat = &catAgg{depts: make(map[uint]*deptAgg), order: len(cSeen)}
			cats[row.Category] = cat
			cSeen = append(cSeen, row.Category)
		}

		dept, ok := cat.depts[row.FromDepartmentID]
		if !ok {
			dept = &deptAgg{
				name:  row.FromDepartment,
				users: make(map[uint]*userAgg),
				order: len(cat.dSeen),
			}
			cat.depts[row.FromDepartmentID] = dept
			cat.dSeen = append(cat.dSeen, row.FromDepartmentID)
		}

		user, ok := dept.users[row.UserID]
		if !ok {
			user = &userAgg{name: row.UserName, order: len(dept.uSeen)}
			dept.users[row.UserID] = user
			dept.uSeen = append(dept.uSeen, row.UserID)
		}
		user.expectations = append(user.expectations, row.Expectation)
	}

	result := make([]model.ExpectationCategory, 0, len(cSeen))
	for _, catName := range cSeen {
		cat := cats[catName]
		catEntry := model.ExpectationCategory{Category: catName}
		for _, deptID := range cat.dSeen {
			dept := cat.depts[deptID]
			deptEntry := model.ExpectationDepartment{
				DepartmentID: deptID,
				Department:   dept.name,
			}
			for _, userID := range dept.uSeen {
				u := dept.users[userID]
				deptEntry.Users = append(deptEntry.Users, model.ExpectationUser{
					UserID:           userID,
					Name:             u.name,
					Expectations:     u.expectations,
					ExpectationCount: len(u.expectations),
				})
				deptEntry.ExpectationCount += len(u.expectations)
			}
			catEntry.Departments = append(catEntry.Departments, deptEntry)
			catEntry.ExpectationCount += deptEntry.ExpectationCount
		}
		result = append(result, catEntry)
	}
	return result
}

// GetExpectationData 目标部门的期望反馈汇总。没有数据时返回空数组。
func (s *ExpectationService) GetExpectationData(toDepartmentID uint, category string) ([]model.ExpectationCategory, error) {
	if category != "" {
		category = util.NormalizeCategory(category)
	}
	rows, err := s.SurveyRepo.ExpectationRows(toDepartmentID, category)
	if err != nil {
		return nil, err
	}
	return RollupExpectations(rows), nil
}

// CollectExpectations 汇总器与 AI 摘要共用的扁平期望文本列表。
func (s *ExpectationService) CollectExpectations(toDepartmentID uint, category string) ([]string, error) {
	if category != "" {
		category = util.NormalizeCategory(category)
	}
	rows, err := s.SurveyRepo.ExpectationRows(toDepartmentID, category)
	if err != nil {
		return nil, err
	}
	expectations := make([]string, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Expectation) != "" {
			expectations = append(expectations, row.Expectation)
		}
	}
	return expectations, nil
}

// SummarizeByRule 不依赖外部服务的摘要：去重计数后按首次出现顺序输出。
func SummarizeByRule(expectations []string) []string {
	type bucket struct {
		text  string
		count int
	}
	seen := make(map[string]*bucket)
	var order []*bucket
	for _, e := range expectations {
		key := util.NormalizeText(e)
		if key == "" {
			continue
		}
		b, ok := seen[key]
		if !ok {
			b = &bucket{text: e}
			seen[key] = b
			order = append(order, b)
		}
		b.count++
	}

	bullets := make([]string, 0, len(order))
	for _, b := range order {
		if b.count > 1 {
			bullets = append(bullets, "• "+b.text+" (x"+strconv.Itoa(b.count)+")")
		} else {
			bullets = append(bullets, "• "+b.text)
		}
	}
	return bullets
}
