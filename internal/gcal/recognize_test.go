package gcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalnangage/marketing-agent/internal/strategy"
)

func TestIsStrategyEvent(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name        string
		summary     string
		description string
		want        bool
	}{
		{
			name:        "description tag",
			summary:     "아무 제목",
			description: "[MARKETING_STRATEGY]\n포스터 제작",
			want:        true,
		},
		{
			name:    "title tag",
			summary: "[전략] 릴스 챌린지",
			want:    true,
		},
		{
			name:        "legacy phrase in description",
			summary:     "10월 이벤트",
			description: "실행 모드: 직접 실행",
			want:        true,
		},
		{
			name:        "legacy marketing phrase",
			summary:     "회의",
			description: "마케팅 계획 논의",
			want:        true,
		},
		{
			name:        "plain personal event",
			summary:     "치과 예약",
			description: "오후 3시",
			want:        false,
		},
		{
			name: "empty event",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsStrategyEvent(tt.summary, tt.description))
		})
	}
}

func TestIsStrategyEventCustomPhrases(t *testing.T) {
	r := &Recognizer{LegacyPhrases: []string{"캠페인"}}

	assert.True(t, r.IsStrategyEvent("x", "가을 캠페인 준비"))
	// Default phrases no longer apply once the list is replaced.
	assert.False(t, r.IsStrategyEvent("x", "마케팅 회의"))
	// Tags always win regardless of the phrase list.
	assert.True(t, r.IsStrategyEvent("[전략] x", ""))
}

func TestIsTagged(t *testing.T) {
	r := NewRecognizer()

	assert.True(t, r.IsTagged("[전략] x", ""))
	assert.True(t, r.IsTagged("", "[MARKETING_STRATEGY]\nx"))
	// Legacy-phrase matches are recognized but not tagged.
	assert.False(t, r.IsTagged("회의", "실행 모드: 직접 실행"))
}

func TestExtractStrategyCode(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name        string
		summary     string
		description string
		want        string
	}{
		{
			name:        "labeled code",
			description: "전략: 릴스 챌린지\n전략 코드: AI_GEN_1",
			want:        "AI_GEN_1",
		},
		{
			name:        "labeled code lowercase label match",
			description: "전략 코드: photo12",
			want:        "photo12",
		},
		{
			name:        "bracketed code in description",
			description: "[MARKETING_STRATEGY]\n[PHOTO] 포토 이벤트 진행",
			want:        "PHOTO",
		},
		{
			name:    "bracketed code in title",
			summary: "[VIP] 혜택 안내",
			want:    "VIP",
		},
		{
			name:        "label wins over bracket",
			summary:     "[VIP] 제목",
			description: "전략 코드: PHOTO\n[LOCAL] 본문",
			want:        "PHOTO",
		},
		{
			name:        "description tag is not a code",
			description: "[MARKETING_STRATEGY]\n본문",
			want:        "",
		},
		{
			name:        "no code anywhere",
			summary:     "제목",
			description: "본문",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExtractStrategyCode(tt.summary, tt.description))
		})
	}
}

func TestExtractStrategyTitle(t *testing.T) {
	r := NewRecognizer()

	assert.Equal(t, "릴스 챌린지", r.ExtractStrategyTitle("본문\n\n전략: 릴스 챌린지\n실행 모드: 직접 실행"))
	assert.Equal(t, "", r.ExtractStrategyTitle("본문"))
}

func TestStripTags(t *testing.T) {
	summary, description := StripTags("[전략] 릴스 챌린지", "[MARKETING_STRATEGY]\n포스터 제작")
	assert.Equal(t, "릴스 챌린지", summary)
	assert.Equal(t, "포스터 제작", description)

	// Only a leading tag is stripped; the same text later on is content.
	summary, description = StripTags("메모 [전략] 참고", "참고: [MARKETING_STRATEGY] 문구")
	assert.Equal(t, "메모 [전략] 참고", summary)
	assert.Equal(t, "참고: [MARKETING_STRATEGY] 문구", description)
}

func TestNormalizeEventID(t *testing.T) {
	assert.Equal(t, "abc123", NormalizeEventID("gcal_abc123"))
	assert.Equal(t, "abc123", NormalizeEventID("gcal_gcal_abc123"))
	assert.Equal(t, "abc123", NormalizeEventID("abc123"))
	assert.Equal(t, "", NormalizeEventID("gcal_"))
}

func TestBuildActionEventRoundTrip(t *testing.T) {
	r := NewRecognizer()
	action := strategy.ScheduledAction{
		StrategyID:        999,
		StrategyCode:      "AI_GEN_1",
		StrategyTitle:     "릴스 챌린지",
		ActionIndex:       0,
		ActionTitle:       "콘셉트 기획",
		ActionIcon:        "🎯",
		ActionDescription: "1일 - 직접 실행",
		Date:              time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC),
		Mode:              strategy.ModeExpert,
	}

	input := BuildActionEvent(action, "Asia/Seoul")

	// An event we write must be recognized and re-keyed on the next fetch.
	require.True(t, r.IsStrategyEvent(input.Summary, input.Description))
	require.True(t, r.IsTagged(input.Summary, input.Description))
	assert.Equal(t, "AI_GEN_1", r.ExtractStrategyCode(input.Summary, input.Description))
	assert.Equal(t, "릴스 챌린지", r.ExtractStrategyTitle(input.Description))
	assert.Contains(t, input.Description, "전문가 요청")

	summary, _ := StripTags(input.Summary, input.Description)
	assert.Equal(t, "콘셉트 기획", summary)

	assert.Equal(t, time.Hour, input.EndTime.Sub(input.StartTime))
}
