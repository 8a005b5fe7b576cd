package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", hash)

	assert.True(t, VerifyPassword(hash, "correct-horse"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "correct-horse"))
}

func TestGenerateBookingReferenceShape(t *testing.T) {
	shape := regexp.MustCompile(`^BK\d{6,9}$`)

	for i := 0; i < 200; i++ {
		ref := GenerateBookingReference()
		assert.Regexp(t, shape, ref)
		assert.GreaterOrEqual(t, len(ref), 8)
		assert.LessOrEqual(t, len(ref), 11)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Email string `validate:"required,email"`
		Age   int    `validate:"min=1"`
	}

	assert.Nil(t, ValidateStruct(sample{Email: "ada@example.com", Age: 30}))

	errs := ValidateStruct(sample{Email: "nope", Age: 0})
	require.Len(t, errs, 2)
	assert.Equal(t, "Invalid email format", errs["Email"])
}
