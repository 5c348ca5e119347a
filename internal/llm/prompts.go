package llm

import "strings"

// chatSystemPrompt keeps consultation answers short, plain-text and on
// the marketing topic.
const chatSystemPrompt = `당신은 친근하고 전문적인 마케팅 AI 에이전트입니다.

답변 규칙:
- 짧고 간결하게 답변하세요 (2-3문장 이내)
- 마크다운 문법(**, ##, ### 등)을 사용하지 마세요
- 일반 텍스트로만 답변하세요
- 친근하고 도움이 되는 톤으로 답변하세요
- 구체적이고 실행 가능한 조언을 제공하세요

마케팅 관련 질문에 대해서만 답변하고, 다른 주제는 "마케팅 관련 질문을 해주세요"라고 안내하세요.`

// strategySystemPrompt pins the response to the structure the parser
// expects: ordinal markers, section headers, numbered action lines.
const strategySystemPrompt = `소상공인/스타트업을 위한 2가지 창의적이고 실행 가능한 마케팅 전략을 생성하세요. 각 전략은 단계별로 2-3개의 구체적인 액션을 포함해야 합니다:

전략 1: [창의적이고 구체적인 실행 아이디어 제목]
개요: [1문장으로 전략 설명]
사전단계:
1. [구체적 행동 1] - [소요시간] - [실행방법]
2. [구체적 행동 2] - [소요시간] - [실행방법]
3. [구체적 행동 3] - [소요시간] - [실행방법]
기획단계:
1. [구체적 행동 1] - [소요시간] - [실행방법]
2. [구체적 행동 2] - [소요시간] - [실행방법]
3. [구체적 행동 3] - [소요시간] - [실행방법]
실행단계:
1. [구체적 행동 1] - [소요시간] - [실행방법]
2. [구체적 행동 2] - [소요시간] - [실행방법]
3. [구체적 행동 3] - [소요시간] - [실행방법]
효과: [구체적인 예상 결과]

전략 2: [창의적이고 구체적인 실행 아이디어 제목]
[동일 형식 - 각 단계별로 2-3개 액션]

모든 액션은 창의적이고 실제로 바로 실행할 수 있는 구체적인 행동이어야 하며, 각 단계별로 최소 2-3개의 세부 액션을 포함해야 합니다.`

const strategyIdeaCatalog = `다음과 같은 창의적인 실행 아이디어를 포함해주세요:
- 바이럴 콘텐츠 제작 (릴스, 챌린지, 해시태그 캠페인)
- 고객 참여 이벤트 (포토 콘테스트, 리뷰 이벤트, 추첨)
- 지역 커뮤니티 마케팅 (협업, 제휴, 이벤트 참여)
- 디지털 마케팅 (SNS 광고, 인플루언서 협업, 이메일 마케팅)
- 고객 유지 프로그램 (로열티, VIP 혜택, 개인화 서비스)
- 신제품/신메뉴 런칭 (사전 홍보, 출시 이벤트, 후속 마케팅)
- 창의적 이벤트 기획 (테마 데이, 콜라보레이션, 특별 경험 제공)
- 고객 참여형 마케팅 (투표, 설문, 커뮤니티 챌린지)
- 트렌드 활용 마케팅 (최신 트렌드, 계절성, 특별한 날 활용)
- 스토리텔링 마케팅 (브랜드 스토리, 고객 스토리, 감성 마케팅)`

// generationTrigger is the canned button label the UI sends; it carries
// no real user intent, so it must not count as conversation input.
const generationTrigger = "AI 전략 생성하기"

// hasUserInput reports whether the history holds an actual user message
// worth grounding the strategies on.
func hasUserInput(history []Message) bool {
	for _, msg := range history {
		if msg.Type == MessageTypeUser &&
			strings.TrimSpace(msg.Content) != "" &&
			!strings.Contains(msg.Content, generationTrigger) {
			return true
		}
	}
	return false
}

// conversationText flattens the history for inclusion in a prompt.
func conversationText(history []Message) string {
	parts := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "AI"
		if msg.Type == MessageTypeUser {
			speaker = "사용자"
		}
		parts = append(parts, speaker+": "+msg.Content)
	}
	return strings.Join(parts, "\n\n")
}

// strategyUserPrompt builds the user turn for strategy generation,
// grounded on the conversation when there is one.
func strategyUserPrompt(history []Message) string {
	if hasUserInput(history) {
		return "대화 내용: " + conversationText(history) +
			"\n\n위 내용을 바탕으로 창의적이고 실행 가능한 마케팅 전략 2개를 생성해주세요. 각 전략은 단계별로 2-3개의 구체적인 액션을 포함하고, 실제로 바로 실행할 수 있는 창의적인 행동 아이디어여야 합니다.\n\n전략 제목은 창의적이고 구체적인 실행 아이디어를 간결하게 표현해주세요. 예: \"인스타그램 릴스 챌린지 바이럴 마케팅\"\n\n" +
			strategyIdeaCatalog
	}
	return "소상공인/스타트업을 위한 창의적이고 실행 가능한 마케팅 전략 2개를 생성해주세요. 각 전략은 단계별로 2-3개의 구체적인 액션을 포함해야 합니다.\n\n전략 제목은 창의적이고 구체적인 실행 아이디어를 간결하게 표현해주세요. 예: \"인스타그램 릴스 챌린지 바이럴 마케팅\"\n\n" +
		strategyIdeaCatalog +
		"\n\n각 전략은 창의적이고 실제로 바로 실행할 수 있는 구체적인 행동이어야 하며, 각 단계별로 최소 2-3개의 세부 액션을 포함해야 합니다."
}
