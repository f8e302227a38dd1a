package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownCodes(t *testing.T) {
	tests := []struct {
		code     ProcessingStatus
		category StatusCategory
		label    string
	}{
		{StatusPending, CategoryInfo, "Pending processing"},
		{StatusProcessing, CategoryWarning, "Processing"},
		{StatusCompleted, CategorySuccess, "Completed"},
		{StatusFailed, CategoryDanger, "Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.category, Classify(tt.code))
			assert.Equal(t, tt.label, Label(tt.code))
			assert.True(t, tt.code.Known())
		})
	}
}

func TestClassify_UnknownCodesFallBack(t *testing.T) {
	for _, n := range []int{-1, -100, 4, 5, 42, math.MaxInt32, math.MinInt32} {
		code := ProcessingStatus(n)
		assert.Equal(t, CategoryInfo, Classify(code), "code %d", n)
		assert.Equal(t, "Unknown", Label(code), "code %d", n)
		assert.False(t, code.Known(), "code %d", n)
	}
}

func TestDescribe_NeverEmpty(t *testing.T) {
	for n := -10; n <= 10; n++ {
		d := Describe(ProcessingStatus(n))
		assert.NotEmpty(t, d.Label)
		assert.NotEmpty(t, d.Category)
		assert.NotEmpty(t, d.Name)
	}
}

func TestDescribe_Idempotent(t *testing.T) {
	for n := -2; n <= 5; n++ {
		code := ProcessingStatus(n)
		assert.Equal(t, Describe(code), Describe(code))
		assert.Equal(t, Classify(code), Classify(code))
		assert.Equal(t, Label(code), Label(code))
	}
}

func TestProcessingStatus_String(t *testing.T) {
	assert.Equal(t, "Completed", StatusCompleted.String())
	assert.Equal(t, "Unknown", StatusUnknown.String())
}

func TestKnownStatuses(t *testing.T) {
	assert.Equal(t,
		[]ProcessingStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed},
		KnownStatuses(),
	)
}

type code uint16

func TestStatusFromValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  ProcessingStatus
	}{
		{"nil", nil, StatusUnknown},
		{"int", 2, StatusCompleted},
		{"int64", int64(3), StatusFailed},
		{"uint8", uint8(1), StatusProcessing},
		{"uint", uint(2), StatusCompleted},
		{"int16", int16(3), StatusFailed},
		{"int8 zero", int8(0), StatusPending},
		{"uint16", uint16(1), StatusProcessing},
		{"uint32", uint32(2), StatusCompleted},
		{"float32", float32(3), StatusFailed},
		{"named integer", code(2), StatusCompleted},
		{"integral float", 1.0, StatusProcessing},
		{"fractional float", 1.5, StatusUnknown},
		{"NaN", math.NaN(), StatusUnknown},
		{"infinity", math.Inf(1), StatusUnknown},
		{"numeric string", "1", StatusUnknown},
		{"bool", true, StatusUnknown},
		{"negative", -7, ProcessingStatus(-7)},
		{"huge int64", int64(math.MaxInt64), StatusUnknown},
		{"huge uint64", uint64(math.MaxUint64), StatusUnknown},
		{"json number", json.Number("0"), StatusPending},
		{"json fractional number", json.Number("2.5"), StatusUnknown},
		{"json integral exponent", json.Number("2e0"), StatusCompleted},
		{"typed status", StatusFailed, StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFromValue(tt.value)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, Label(got))
		})
	}
}

func TestParseStatusName(t *testing.T) {
	tests := []struct {
		input string
		want  ProcessingStatus
	}{
		{"pending", StatusPending},
		{"PROCESSING", StatusProcessing},
		{"Completed", StatusCompleted},
		{" failed ", StatusFailed},
		{"pending processing", StatusPending},
		{"3", StatusFailed},
		{"0", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatusName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatusName_Invalid(t *testing.T) {
	for _, input := range []string{"", "done", "9", "-1", "unknown"} {
		_, err := ParseStatusName(input)
		assert.ErrorIs(t, err, ErrUnknownStatus, "input %q", input)
	}
}
