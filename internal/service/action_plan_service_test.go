package service

import (
	"testing"

	"icsq_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanViewDerivesFinalStatus(t *testing.T) {
	plan := &model.ActionPlan{
		Assignees: []model.ActionPlanAssignee{
			{UserID: 1, Status: model.PlanCompleted},
			{UserID: 2, Status: model.PlanPending},
		},
	}

	view := planView(plan)
	assert.Equal(t, model.PlanInProgress, view.FinalStatus)
	assert.Equal(t, []uint{1, 2}, view.AssignedToUserIDs)
	require.Len(t, view.StatusPerAssignee, 2)
	assert.Equal(t, model.PlanCompleted, view.StatusPerAssignee[1])
	assert.Equal(t, model.PlanPending, view.StatusPerAssignee[2])
}

func TestPlanViewNewPlanIsPending(t *testing.T) {
	plan := &model.ActionPlan{
		Assignees: []model.ActionPlanAssignee{
			{UserID: 1, Status: model.PlanPending},
			{UserID: 2, Status: model.PlanPending},
			{UserID: 3, Status: model.PlanPending},
		},
	}

	view := planView(plan)
	assert.Equal(t, model.PlanPending, view.FinalStatus)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
	assert.Equal(t, []uint{5}, uniqueIDs([]uint{5, 5, 5}))
}
