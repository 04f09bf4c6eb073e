package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		todo Todo
		want bool
	}{
		{name: "no due date", todo: Todo{}, want: false},
		{name: "due in the past", todo: Todo{DueDate: &past}, want: true},
		{name: "due in the future", todo: Todo{DueDate: &future}, want: false},
		{name: "due exactly now", todo: Todo{DueDate: &now}, want: false},
		{name: "completed and past due", todo: Todo{DueDate: &past, Completed: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.todo.IsOverdue(now))
		})
	}
}

func TestTodoPriorityColor(t *testing.T) {
	assert.Equal(t, "#28a745", Todo{Priority: PriorityLow}.PriorityColor())
	assert.Equal(t, "#ffc107", Todo{Priority: PriorityMedium}.PriorityColor())
	assert.Equal(t, "#fd7e14", Todo{Priority: PriorityHigh}.PriorityColor())
	assert.Equal(t, "#dc3545", Todo{Priority: PriorityUrgent}.PriorityColor())
	assert.Equal(t, "#6c757d", Todo{Priority: "someday"}.PriorityColor())
}

func TestTodoSetCompleted(t *testing.T) {
	first := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	later := first.Add(time.Minute)

	var todo Todo
	todo.SetCompleted(true, first)
	require.NotNil(t, todo.CompletedAt)
	assert.True(t, todo.Completed)
	assert.Equal(t, first, *todo.CompletedAt)

	// already completed: the original stamp is kept
	todo.SetCompleted(true, later)
	assert.Equal(t, first, *todo.CompletedAt)

	todo.SetCompleted(false, later)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Priority("").Valid())
	assert.False(t, Priority("HIGH").Valid())
}

func TestViewsDecoratesTodos(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	views := Views([]Todo{{ID: 1, Priority: PriorityUrgent, DueDate: &past}, {ID: 2}}, now)

	require.Len(t, views, 2)
	assert.True(t, views[0].IsOverdue)
	assert.Equal(t, "#dc3545", views[0].PriorityColor)
	assert.False(t, views[1].IsOverdue)
	assert.Equal(t, "#6c757d", views[1].PriorityColor)
}
