package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name       string
		confidence int
		expected   string
	}{
		{name: "strong at boundary", confidence: 80, expected: StrongValue},
		{name: "strong at maximum", confidence: 100, expected: StrongValue},
		{name: "moderate at boundary", confidence: 60, expected: ModerateValue},
		{name: "weak at boundary", confidence: 40, expected: WeakValue},
		{name: "poor below boundary", confidence: 39, expected: PoorValue},
		{name: "poor at zero", confidence: 0, expected: PoorValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.confidence))
		})
	}
}

func TestGetColorLabelContainsPlainText(t *testing.T) {
	for _, confidence := range []int{0, 40, 60, 80, 100} {
		assert.Contains(t, GetColorLabel(confidence), GetPlainLabel(confidence))
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{input: "yes", expected: true},
		{input: "TRUE", expected: true},
		{input: "1", expected: true},
		{input: "no", expected: false},
		{input: "False", expected: false},
		{input: "0", expected: false},
		{input: "maybe", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetScoreLogDBFilePath(t *testing.T) {
	assert.Contains(t, GetScoreLogDBFilePath(), ".capaimpact_scorelog.db")
}
