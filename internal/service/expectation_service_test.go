package service

import (
	"testing"

	"icsq_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupExpectationsNesting(t *testing.T) {
	rows := []model.ExpectationRow{
		{Category: "quality", FromDepartmentID: 2, FromDepartment: "HR", UserID: 10, UserName: "Alice", Expectation: "Fewer errors in reports"},
		{Category: "quality", FromDepartmentID: 2, FromDepartment: "HR", UserID: 10, UserName: "Alice", Expectation: "Double-check figures"},
		{Category: "quality", FromDepartmentID: 3, FromDepartment: "Finance", UserID: 11, UserName: "Bob", Expectation: "Consistent formatting"},
		{Category: "support", FromDepartmentID: 2, FromDepartment: "HR", UserID: 12, UserName: "Carol", Expectation: "Faster ticket handling"},
	}

	result := RollupExpectations(rows)
	require.Len(t, result, 2)

	// 类别按首次出现顺序
	quality := result[0]
	assert.Equal(t, "quality", quality.Category)
	assert.Equal(t, 3, quality.ExpectationCount)
	require.Len(t, quality.Departments, 2)

	hr := quality.Departments[0]
	assert.Equal(t, "HR", hr.Department)
	assert.Equal(t, 2, hr.ExpectationCount)
	require.Len(t, hr.Users, 1)
	assert.Equal(t, "Alice", hr.Users[0].Name)
	assert.Equal(t, []string{"Fewer errors in reports", "Double-check figures"}, hr.Users[0].Expectations)
	assert.Equal(t, 2, hr.Users[0].ExpectationCount)

	fin := quality.Departments[1]
	assert.Equal(t, "Finance", fin.Department)
	assert.Equal(t, 1, fin.ExpectationCount)

	support := result[1]
	assert.Equal(t, "support", support.Category)
	assert.Equal(t, 1, support.ExpectationCount)
}

func TestRollupExpectationsSkipsEmptyText(t *testing.T) {
	rows := []model.ExpectationRow{
		{Category: "quality", FromDepartmentID: 2, FromDepartment: "HR", UserID: 10, UserName: "Alice", Expectation: "   "},
		{Category: "quality", FromDepartmentID: 2, FromDepartment: "HR", UserID: 10, UserName: "Alice", Expectation: ""},
	}

	// 全部为空白时类别整个省略，不输出空数组
	assert.Empty(t, RollupExpectations(rows))
}

func TestRollupExpectationsEmptyInput(t *testing.T) {
	result := RollupExpectations(nil)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSummarizeByRule(t *testing.T) {
	expectations := []string{
		"Need faster turnaround",
		"need faster turnaround!!",
		"Clear escalation path",
		"Need FASTER turnaround",
	}

	bullets := SummarizeByRule(expectations)
	require.Len(t, bullets, 2)
	// 重复条目按规范化去重计数，保留首次出现的原文
	assert.Equal(t, "• Need faster turnaround (x3)", bullets[0])
	assert.Equal(t, "• Clear escalation path", bullets[1])
}

func TestSummarizeByRuleEmpty(t *testing.T) {
	assert.Empty(t, SummarizeByRule(nil))
	assert.Empty(t, SummarizeByRule([]string{"  ", "?!"}))
}
