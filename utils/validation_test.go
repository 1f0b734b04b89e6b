package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeInput("<script>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00\x1fb"))
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", email)

	for _, bad := range []string{"", "not-an-email", "a@b", "jane@", "@example.com"} {
		_, err := SanitizeEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", phone)

	phone, err = SanitizePhone("(555) 010-0123")
	require.NoError(t, err)
	assert.Equal(t, "5550100123", phone)

	_, err = SanitizePhone("")
	assert.Error(t, err)

	_, err = SanitizePhone("12345")
	assert.Error(t, err)

	_, err = SanitizePhone("12345678901234567890")
	assert.Error(t, err)
}
