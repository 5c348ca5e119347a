package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasUserInput(t *testing.T) {
	tests := []struct {
		name    string
		history []Message
		want    bool
	}{
		{
			name: "real user message",
			history: []Message{
				{Type: MessageTypeUser, Content: "카페 신메뉴 홍보하고 싶어요"},
			},
			want: true,
		},
		{
			name:    "empty history",
			history: nil,
			want:    false,
		},
		{
			name: "only ai messages",
			history: []Message{
				{Type: MessageTypeAI, Content: "무엇을 도와드릴까요?"},
			},
			want: false,
		},
		{
			name: "only the generate button trigger",
			history: []Message{
				{Type: MessageTypeUser, Content: "AI 전략 생성하기"},
			},
			want: false,
		},
		{
			name: "whitespace only",
			history: []Message{
				{Type: MessageTypeUser, Content: "   "},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasUserInput(tt.history))
		})
	}
}

func TestStrategyUserPrompt(t *testing.T) {
	grounded := strategyUserPrompt([]Message{
		{Type: MessageTypeUser, Content: "동네 빵집을 운영합니다"},
		{Type: MessageTypeAI, Content: "SNS 활용을 추천합니다"},
	})
	assert.True(t, strings.HasPrefix(grounded, "대화 내용: "))
	assert.Contains(t, grounded, "사용자: 동네 빵집을 운영합니다")
	assert.Contains(t, grounded, "AI: SNS 활용을 추천합니다")

	generic := strategyUserPrompt(nil)
	assert.False(t, strings.HasPrefix(generic, "대화 내용:"))
	assert.Contains(t, generic, "마케팅 전략 2개")
}
