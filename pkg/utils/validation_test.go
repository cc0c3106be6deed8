package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name string `validate:"required"`
}

func TestValidateStruct_ReturnsErrorForMissingRequiredField(t *testing.T) {
	// Arrange
	req := sampleRequest{}

	// Act
	err := ValidateStruct(req)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateStruct_PassesWhenRequiredFieldsPresent(t *testing.T) {
	// Arrange
	req := sampleRequest{Name: "gradient descent"}

	// Act
	err := ValidateStruct(req)

	// Assert
	assert.NoError(t, err)
}

func TestValidateUUID_RejectsMalformedStrings(t *testing.T) {
	// Arrange + Act + Assert
	assert.False(t, ValidateUUID("not-a-uuid"))
	assert.False(t, ValidateUUID(""))
	assert.True(t, ValidateUUID("550e8400-e29b-41d4-a716-446655440000"))
}

func TestValidateStringLength_EnforcesMinAndMax(t *testing.T) {
	// Arrange + Act + Assert
	assert.NoError(t, ValidateStringLength("hello", 1, 10))
	assert.Error(t, ValidateStringLength("", 1, 10))
	assert.Error(t, ValidateStringLength("way too long", 1, 5))
}

func TestValidateEnum_RejectsValueNotInList(t *testing.T) {
	// Arrange
	allowed := []string{"concept", "skill", "tool"}

	// Act + Assert
	assert.NoError(t, ValidateEnum("skill", allowed, "kind"))
	assert.Error(t, ValidateEnum("bogus", allowed, "kind"))
}

func TestSanitizeString_StripsControlCharactersAndTrims(t *testing.T) {
	// Arrange
	input := "  hello\x00world\x07  "

	// Act
	result := SanitizeString(input)

	// Assert
	assert.Equal(t, "helloworld", result)
}

func TestNormalizeString_CollapsesRepeatedWhitespace(t *testing.T) {
	// Arrange
	input := "  gradient   descent  "

	// Act
	result := NormalizeString(input)

	// Assert
	assert.Equal(t, "gradient descent", result)
}
