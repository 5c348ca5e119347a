package strategy

import (
	"fmt"
	"strings"
	"time"
)

// reasonRules maps title keywords to a canned rationale paragraph.
// Order matters: first matching rule wins.
var reasonRules = []struct {
	keywords []string
	reason   string
}{
	{
		keywords: []string{"릴스", "챌린지"},
		reason:   "고객 참여형 바이럴 마케팅 전략입니다. 인스타그램 릴스의 높은 도달률과 참여율을 활용하여 자연스러운 바이럴 효과를 만듭니다. 고객이 직접 콘텐츠에 참여함으로써 브랜드 인지도를 높이고 신규 고객을 유치할 수 있습니다.",
	},
	{
		keywords: []string{"쿠폰", "할인"},
		reason:   "신규 고객 유치를 위한 할인 마케팅 전략입니다. 지역 커뮤니티와 연계하여 타겟 고객에게 직접적인 혜택을 제공합니다. 할인 쿠폰을 통해 고객의 첫 방문을 유도하고, 추가 혜택으로 재방문을 유도하는 효과적인 고객 확보 전략입니다.",
	},
	{
		keywords: []string{"ugc", "후기", "사진"},
		reason:   "고객 생성 콘텐츠(UGC) 마케팅 전략입니다. 고객이 직접 제작한 콘텐츠를 활용하여 신뢰도 높은 마케팅을 진행합니다. 고객 참여를 유도하는 이벤트를 통해 자연스러운 브랜드 노출과 입소문 효과를 얻을 수 있습니다.",
	},
	{
		keywords: []string{"신메뉴", "출시", "런칭"},
		reason:   "신제품/신메뉴 출시 마케팅 전략입니다. 다양한 채널을 활용한 종합적인 홍보로 신제품에 대한 관심을 높입니다. 사전 홍보부터 출시 이벤트, 후속 마케팅까지 체계적인 접근으로 신제품의 성공적인 런칭을 지원합니다.",
	},
	{
		keywords: []string{"sns", "인스타그램", "소셜"},
		reason:   "소셜미디어 마케팅 전략입니다. SNS 플랫폼의 특성을 활용하여 타겟 고객과 직접적인 소통을 통해 브랜드 인지도를 높입니다. 다양한 콘텐츠 형식을 통해 고객의 관심을 끌고 참여를 유도하는 디지털 마케팅 접근법입니다.",
	},
	{
		keywords: []string{"커뮤니티", "지역", "협업"},
		reason:   "지역 커뮤니티 마케팅 전략입니다. 지역 내 다른 비즈니스나 커뮤니티와의 협업을 통해 상호 고객을 공유하고 신뢰도를 높입니다. 지역 밀착형 마케팅으로 입소문 효과와 지속적인 고객 관계를 구축할 수 있습니다.",
	},
	{
		keywords: []string{"이벤트", "프로모션"},
		reason:   "이벤트 마케팅 전략입니다. 고객 참여를 유도하는 다양한 이벤트를 통해 브랜드와의 상호작용을 높입니다. 재미있고 혜택이 있는 이벤트로 고객의 관심을 끌고 브랜드 인지도를 높이는 효과적인 마케팅 방법입니다.",
	},
}

const defaultReason = "대화 내용을 바탕으로 생성된 맞춤형 마케팅 전략입니다. 현재 상황과 목표에 최적화된 실행 가능한 마케팅 아이디어를 제공합니다."

// ReasonForTitle picks a rationale paragraph for a strategy title by
// keyword matching. Always returns a non-empty string.
func ReasonForTitle(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range reasonRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reason
			}
		}
	}
	return defaultReason
}

// FallbackStrategies returns the two hand-authored strategies served when
// the model response contains no recognizable strategy markers at all.
func FallbackStrategies(now time.Time) []Strategy {
	canned := []struct {
		title    string
		overview string
		effect   string
		actions  []parsedAction
	}{
		{
			title:    "인스타그램 릴스 챌린지 바이럴 마케팅",
			overview: "고객 참여형 릴스 챌린지를 통해 바이럴 마케팅 효과를 얻는 창의적 전략",
			effect:   "릴스 도달률 2만+, 신규 팔로워 500명 증가, 참여 고객 200명+",
			actions: []parsedAction{
				{title: "챌린지 콘셉트 기획 및 해시태그 #카페챌린지 설정", duration: "1일", method: defaultMethod, section: cursorPreparation},
				{title: "참여 가이드 영상 제작 및 매장 내 안내 포스터 부착", duration: "1일", method: defaultMethod, section: cursorPreparation},
				{title: "시드 릴스 3개 제작 (직원 참여, 고객 후기, 메뉴 소개)", duration: "2일", method: defaultMethod, section: cursorContent},
				{title: "인스타그램 피드에 챌린지 소개 포스팅 2개 업로드", duration: "1일", method: defaultMethod, section: cursorContent},
				{title: "참여 고객에게 음료 무료 제공 및 추가 혜택 지급", duration: "7일", method: defaultMethod, section: cursorExecution},
				{title: "참여 릴스 리포스트 및 베스트 3명 선정하여 상품권 지급", duration: "3일", method: defaultMethod, section: cursorExecution},
			},
		},
		{
			title:    "테마 데이 특별 경험 마케팅",
			overview: "매주 특별한 테마의 날을 만들어 고객에게 독특한 경험을 제공하는 창의적 전략",
			effect:   "고객 참여도 3배 증가, SNS 공유량 200% 상승, 재방문율 40% 향상",
			actions: []parsedAction{
				{title: "월간 테마 데이 캘린더 제작 (예: 고양이데이, 커피데이, 친구데이)", duration: "1일", method: defaultMethod, section: cursorPreparation},
				{title: "각 테마별 특별 메뉴 및 장식 아이템 준비", duration: "2일", method: defaultMethod, section: cursorPreparation},
				{title: "테마별 포토존 설치 및 인스타그램 필터 제작", duration: "1일", method: defaultMethod, section: cursorContent},
				{title: "테마 데이 안내 포스터 및 SNS 콘텐츠 제작", duration: "1일", method: defaultMethod, section: cursorContent},
				{title: "테마 데이 당일 특별 서비스 제공 및 고객 참여 유도", duration: "1일", method: defaultMethod, section: cursorExecution},
				{title: "고객 참여 사진 리포스트 및 다음 테마 데이 예고", duration: "1일", method: defaultMethod, section: cursorExecution},
			},
		},
	}

	strategies := make([]Strategy, 0, len(canned))
	for i, c := range canned {
		strategies = append(strategies, Strategy{
			ID:             999 + i,
			Code:           fmt.Sprintf("AI_GEN_%d", i+1),
			Title:          c.title,
			Duration:       "14일",
			StartDate:      FormatKoreanDate(now),
			EndDate:        FormatKoreanDate(now.AddDate(0, 0, defaultSpanDays)),
			Summary:        c.overview,
			Reason:         ReasonForTitle(c.title),
			ExpectedEffect: c.effect,
			ActionPlans:    convertActions(c.actions),
		})
	}
	return strategies
}
