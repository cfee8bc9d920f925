package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomJoinCode(t *testing.T) {
	code := RandomJoinCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(joinCodeAlphabet, r), "unexpected rune %q", r)
	}

	// 两次生成撞车的概率可以忽略
	assert.NotEqual(t, RandomJoinCode(6), RandomJoinCode(6))
}

func TestConversationMemberKey(t *testing.T) {
	assert.Equal(t, "3_17", ConversationMemberKey(17, 3))
	assert.Equal(t, "3_17", ConversationMemberKey(3, 17))
	assert.Equal(t, "5_5", ConversationMemberKey(5, 5))
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := EncodeCursor([]interface{}{int64(1714724096000), "664f1c2e8b3a9d0012345678"})
	assert.NotEmpty(t, cursor)

	values, err := DecodeCursor(cursor)
	assert.NoError(t, err)
	assert.Len(t, values, 2)
	assert.Equal(t, float64(1714724096000), values[0])
	assert.Equal(t, "664f1c2e8b3a9d0012345678", values[1])
}

func TestCursorEmpty(t *testing.T) {
	assert.Empty(t, EncodeCursor(nil))

	values, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, values)
}

func TestCursorInvalidBase64(t *testing.T) {
	_, err := DecodeCursor("not-base64!!")
	assert.Error(t, err)
}
