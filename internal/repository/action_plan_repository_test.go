package repository

import (
	"testing"

	"icsq_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB 只生成 SQL，不建立连接。
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "icsq:icsq@tcp(127.0.0.1:3306)/icsq?charset=utf8mb4&parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestActionPlanListDepartmentFilterBindsJSON(t *testing.T) {
	repo := NewActionPlanRepository(newDryRunDB(t))

	var plans []model.ActionPlan
	tx := repo.listQuery(0, 5).Find(&plans)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "JSON_CONTAINS(department_ids, CAST(? AS JSON))")
	assert.Contains(t, tx.Statement.Vars, uint(5))
	assert.Contains(t, sql, "ORDER BY action_plans.created_at DESC")
}

func TestActionPlanListAssigneeJoin(t *testing.T) {
	repo := NewActionPlanRepository(newDryRunDB(t))

	var plans []model.ActionPlan
	tx := repo.listQuery(7, 0).Find(&plans)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "JOIN action_plan_assignees apa ON apa.action_plan_id = action_plans.id")
	assert.Contains(t, tx.Statement.Vars, uint(7))
	assert.NotContains(t, sql, "JSON_CONTAINS")
}
