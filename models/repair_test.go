package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusAborted, true},
		{StatusPending, StatusFinished, false},
		{StatusPending, StatusPending, false},
		{StatusInProgress, StatusFinished, true},
		{StatusInProgress, StatusAborted, true},
		{StatusInProgress, StatusPending, false},
		{StatusFinished, StatusInProgress, false},
		{StatusFinished, StatusAborted, false},
		{StatusAborted, StatusPending, false},
		{StatusAborted, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			r := Repair{Status: tt.from}
			assert.Equal(t, tt.want, r.CanTransition(tt.to))
		})
	}
}

func TestApplyTransitionAssignsOperator(t *testing.T) {
	r := Repair{Status: StatusPending}

	assert.True(t, r.ApplyTransition(StatusInProgress, "shaper@shop.example"))
	assert.Equal(t, StatusInProgress, r.Status)
	assert.Equal(t, "shaper@shop.example", r.Operator)

	// Finishing does not reassign the operator
	assert.True(t, r.ApplyTransition(StatusFinished, "other@shop.example"))
	assert.Equal(t, StatusFinished, r.Status)
	assert.Equal(t, "shaper@shop.example", r.Operator)
}

func TestApplyTransitionKeepsExistingOperator(t *testing.T) {
	r := Repair{Status: StatusPending, Operator: "shaper@shop.example"}

	assert.True(t, r.ApplyTransition(StatusInProgress, "other@shop.example"))
	assert.Equal(t, "shaper@shop.example", r.Operator)
}

func TestApplyTransitionRejectsIllegalMove(t *testing.T) {
	r := Repair{Status: StatusFinished}

	assert.False(t, r.ApplyTransition(StatusInProgress, "shaper@shop.example"))
	assert.Equal(t, StatusFinished, r.Status)
	assert.Empty(t, r.Operator)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusAborted))
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}

func TestAnnotationUnitPrice(t *testing.T) {
	a := RepairAnnotation{PricePolyester: 45, PriceEpoxy: 55}

	assert.Equal(t, 45.0, a.UnitPrice(ConstructionPolyester))
	assert.Equal(t, 55.0, a.UnitPrice(ConstructionEpoxy))
	assert.Equal(t, 45.0, a.UnitPrice("unknown"))
}

func TestDefaultRepairTypes(t *testing.T) {
	defaults := DefaultRepairTypes()

	assert.Len(t, defaults, 5)
	for _, rt := range defaults {
		assert.NotEmpty(t, rt.Name)
		assert.NotEmpty(t, rt.Color)
		assert.Greater(t, rt.PriceEpoxy, rt.PricePolyester)
		assert.True(t, rt.IsActive)
	}
}
