package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFinalStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ActionPlanStatus
		want     ActionPlanStatus
	}{
		{"no assignees", nil, PlanPending},
		{"all pending", []ActionPlanStatus{PlanPending, PlanPending}, PlanPending},
		{"one started", []ActionPlanStatus{PlanPending, PlanInProgress}, PlanInProgress},
		{"one completed rest pending", []ActionPlanStatus{PlanCompleted, PlanPending}, PlanInProgress},
		{"all completed", []ActionPlanStatus{PlanCompleted, PlanCompleted}, PlanCompleted},
		{"single completed", []ActionPlanStatus{PlanCompleted}, PlanCompleted},
		{"mixed all three", []ActionPlanStatus{PlanPending, PlanInProgress, PlanCompleted}, PlanInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignees := make([]ActionPlanAssignee, 0, len(tt.statuses))
			for i, s := range tt.statuses {
				assignees = append(assignees, ActionPlanAssignee{UserID: uint(i + 1), Status: s})
			}
			assert.Equal(t, tt.want, DeriveFinalStatus(assignees))
		})
	}
}

func TestStatusPerAssignee(t *testing.T) {
	plan := &ActionPlan{
		Assignees: []ActionPlanAssignee{
			{UserID: 7, Status: PlanPending},
			{UserID: 9, Status: PlanCompleted},
		},
	}
	got := plan.StatusPerAssignee()
	assert.Equal(t, map[uint]ActionPlanStatus{7: PlanPending, 9: PlanCompleted}, got)
}

func TestIsValidPlanStatus(t *testing.T) {
	assert.True(t, IsValidPlanStatus(PlanPending))
	assert.True(t, IsValidPlanStatus(PlanInProgress))
	assert.True(t, IsValidPlanStatus(PlanCompleted))
	assert.False(t, IsValidPlanStatus("done"))
	assert.False(t, IsValidPlanStatus(""))
}
