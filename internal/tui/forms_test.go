package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("jo@example.com"))
	assert.NoError(t, validateEmail("  jo@example.com  "))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("not-an-email"))
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("first name")
	assert.NoError(t, v("Jo"))
	assert.Error(t, v(""))
	assert.Error(t, v("   "))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("longenough"))
	assert.Error(t, validatePassword("short"))
}

func TestValidateOptionalNumber(t *testing.T) {
	v := validateOptionalNumber("height")
	assert.NoError(t, v(""))
	assert.NoError(t, v("175"))
	assert.NoError(t, v("72.5"))
	assert.Error(t, v("-1"))
	assert.Error(t, v("tall"))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 0.0, parseNumber(""))
	assert.Equal(t, 72.5, parseNumber(" 72.5 "))
}

func TestBlankIfZero(t *testing.T) {
	assert.Equal(t, "", blankIfZero(0))
	assert.Equal(t, "29", blankIfZero(29))
	assert.Equal(t, "", blankIfZeroF(0))
	assert.Equal(t, "72.5", blankIfZeroF(72.5))
}
