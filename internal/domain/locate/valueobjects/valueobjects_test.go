package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkflowStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    WorkflowStatus
		wantErr bool
	}{
		{input: "CALL_NEEDED", want: WorkflowCallNeeded},
		{input: "call-needed", want: WorkflowCallNeeded},
		{input: "In Progress", want: WorkflowInProgress},
		{input: " complete ", want: WorkflowComplete},
		{input: "UNKNOWN", want: WorkflowUnknown},
		{input: "DONE", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewWorkflowStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCallType(t *testing.T) {
	ct, err := NewCallType("emergency")
	require.NoError(t, err)
	assert.Equal(t, CallTypeEmergency, ct)
	assert.True(t, ct.IsEmergency())

	ct, err = NewCallType(" Standard ")
	require.NoError(t, err)
	assert.Equal(t, CallTypeStandard, ct)

	_, err = NewCallType("URGENT")
	assert.Error(t, err)
}

func TestParseOrderType(t *testing.T) {
	assert.Equal(t, OrderTypeExcavator, ParseOrderType("excavator"))
	assert.Equal(t, OrderTypeStandard, ParseOrderType(""))
	assert.Equal(t, OrderTypeStandard, ParseOrderType("weird"))
}

func TestPriorityMatch(t *testing.T) {
	tests := []struct {
		mode     PriorityMatch
		priority string
		want     bool
	}{
		{PriorityMatchExact, "EXCAVATOR", true},
		{PriorityMatchExact, " excavator ", true},
		{PriorityMatchExact, "EXCAVATOR - RUSH", false},
		{PriorityMatchExact, "", false},
		{PriorityMatchContains, "EXCAVATOR - RUSH", true},
		{PriorityMatchContains, "mini excavator", true},
		{PriorityMatchContains, "STANDARD", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.Matches(tt.priority), "%s/%q", tt.mode, tt.priority)
	}

	m, err := NewPriorityMatch("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMatchExact, m)

	_, err = NewPriorityMatch("regex")
	assert.Error(t, err)
}
