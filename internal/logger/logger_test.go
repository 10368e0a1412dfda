package logger

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "ki***@example.hu", MaskEmail("kiss.anna@example.hu"))
	assert.Equal(t, "ab***@example.hu", MaskEmail("ab@example.hu"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
	assert.Equal(t, "***", MaskEmail("@example.hu"))
}

func TestMaskEmailKeepsMultibyteRunes(t *testing.T) {
	masked := MaskEmail("ádám@example.hu")
	assert.Equal(t, "ád***@example.hu", masked)
	assert.True(t, utf8.ValidString(masked))
	assert.Equal(t, "é***@example.hu", MaskEmail("é@example.hu"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*********67", MaskPhone("06301234567"))
	assert.Equal(t, "***", MaskPhone("123"))
}

func TestWithContextBeforeNew(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey{}, "req-1")
	assert.NotNil(t, WithContext(ctx))
}
