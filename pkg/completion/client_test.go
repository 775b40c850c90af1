package completion

import (
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
)

func TestToSDKMessages(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "clean this"},
		{Role: "assistant", Content: "ok"},
		{Role: "", Content: "defaults to user"},
	})

	assert.Len(t, msgs, 3)
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, sdk.MessageParamRoleAssistant, msgs[1].Role)
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[2].Role)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("test-key", "claude-haiku-4-5-20251001")
	sc, ok := c.(*sdkClient)
	assert.True(t, ok)
	assert.Equal(t, "claude-haiku-4-5-20251001", sc.defaultModel)
}
