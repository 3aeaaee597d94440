package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/api/analytics/summarize-expectations/rule?"+rawQuery, nil)
	return ctx
}

func TestTargetDepartmentID(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  uint
		ok    bool
	}{
		{"departmentId", "departmentId=3", 3, true},
		{"toDepartmentId兼容", "toDepartmentId=4", 4, true},
		{"departmentId优先", "departmentId=3&toDepartmentId=4", 3, true},
		{"缺参数", "category=quality", 0, false},
		{"零值", "departmentId=0", 0, false},
		{"负值", "departmentId=-2", 0, false},
		{"非数字", "departmentId=abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := targetDepartmentID(queryContext(t, tt.query))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
