package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTaskTitle(t *testing.T) {
	assert.NoError(t, ValidateTaskTitle("Buy milk"))
	assert.Error(t, ValidateTaskTitle(""))
	assert.Error(t, ValidateTaskTitle("   "))

	// 长度按符文数计算，不是字节数
	assert.NoError(t, ValidateTaskTitle(strings.Repeat("ы", MaxTitleLength)))
	assert.Error(t, ValidateTaskTitle(strings.Repeat("ы", MaxTitleLength+1)))
}

func TestValidateTaskDescription(t *testing.T) {
	assert.NoError(t, ValidateTaskDescription(""))
	assert.NoError(t, ValidateTaskDescription("2 liters"))
	assert.NoError(t, ValidateTaskDescription(strings.Repeat("ы", MaxDescriptionLength)))
	assert.Error(t, ValidateTaskDescription(strings.Repeat("ы", MaxDescriptionLength+1)))
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"low", "low"},
		{"низкий", "low"},
		{"1", "low"},
		{"medium", "medium"},
		{"средний", "medium"},
		{"2", "medium"},
		{"high", "high"},
		{"высокий", "high"},
		{"3", "high"},
		{"  HIGH  ", "high"},
		{"Средний", "medium"},
		{"urgent", "medium"},
		{"", "medium"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePriority(tt.input), "input %q", tt.input)
	}
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseUserID("  123456789  ")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), id)

	_, err = ParseUserID("abc")
	assert.Error(t, err)

	_, err = ParseUserID("-5")
	assert.Error(t, err)

	_, err = ParseUserID("0")
	assert.Error(t, err)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Buy milk", SanitizeText("  Buy milk  \n"))
	assert.Equal(t, "", SanitizeText("   "))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("  \t\n"))
	assert.False(t, IsEmpty("x"))
}
