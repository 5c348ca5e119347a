package strategy

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// parseSection is the sticky cursor tracking which part of a strategy body
// the current line belongs to.
type parseSection int

const (
	cursorNone parseSection = iota
	cursorOverview
	cursorPreparation
	cursorContent
	cursorExecution
	cursorEffect
)

var (
	markerRegex = regexp.MustCompile(`전략 \d+:`)
	itemRegex   = regexp.MustCompile(`^\d+\.\s*`)
	quoteRegex  = regexp.MustCompile("[\"“”]")
)

const (
	defaultDuration = "1-2일"
	defaultMethod   = "직접 실행"
	defaultSummary  = "AI가 생성한 맞춤형 마케팅 전략입니다."
	defaultEffect   = "매출 증대 및 고객 유치 효과 기대"
	defaultSpanDays = 14
)

// parsedAction is an action item as it appears in the raw text, before
// conversion into an ActionPlan.
type parsedAction struct {
	title    string
	duration string
	method   string
	section  parseSection
}

// Parse converts a free-form model response into structured strategies.
// Strategies are introduced by "전략 N:" markers; text before the first
// marker is preamble and is discarded. Parse never fails: a segment with
// no recognizable action items gets a default four-step plan, and when
// no markers are present at all the result is empty and the caller is
// expected to use FallbackStrategies instead.
func Parse(content string, now time.Time) []Strategy {
	segments := markerRegex.Split(content, -1)
	if len(segments) < 2 {
		return nil
	}

	var strategies []Strategy
	for i, segment := range segments[1:] {
		strategies = append(strategies, parseSegment(segment, i, now))
	}
	return strategies
}

func parseSegment(segment string, index int, now time.Time) Strategy {
	var (
		title    string
		overview string
		effect   string
		actions  []parsedAction
		cursor   = cursorNone
	)

	for _, raw := range strings.Split(segment, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.Contains(line, "개요:"):
			cursor = cursorOverview
			overview = strings.TrimSpace(overview + " " + trimAfterLabel(line, "개요:"))
		case strings.Contains(line, "사전단계:"):
			cursor = cursorPreparation
		case strings.Contains(line, "기획단계:"):
			cursor = cursorContent
		case strings.Contains(line, "실행단계:"):
			cursor = cursorExecution
		case strings.Contains(line, "효과:"):
			cursor = cursorEffect
			effect = strings.TrimSpace(effect + " " + trimAfterLabel(line, "효과:"))
		case itemRegex.MatchString(line):
			actions = append(actions, parseActionLine(line, cursor))
		case cursor == cursorOverview && !strings.Contains(line, ":"):
			overview = strings.TrimSpace(overview + " " + line)
		case cursor == cursorEffect && !strings.Contains(line, ":"):
			effect = strings.TrimSpace(effect + " " + line)
		case title == "" && !strings.Contains(line, ":") && !strings.HasPrefix(line, "**"):
			title = quoteRegex.ReplaceAllString(line, "")
		}
	}

	if title == "" {
		title = fmt.Sprintf("전략 %d", index+1)
	}
	if overview == "" {
		overview = defaultSummary
	}
	if effect == "" {
		effect = defaultEffect
	}
	if len(actions) == 0 {
		actions = defaultActions()
	}

	return Strategy{
		ID:             999 + index,
		Code:           fmt.Sprintf("AI_GEN_%d", index+1),
		Title:          title,
		Duration:       fmt.Sprintf("%d일", defaultSpanDays),
		StartDate:      FormatKoreanDate(now),
		EndDate:        FormatKoreanDate(now.AddDate(0, 0, defaultSpanDays)),
		Summary:        overview,
		Reason:         ReasonForTitle(title),
		ExpectedEffect: effect,
		ActionPlans:    convertActions(actions),
	}
}

// parseActionLine splits a numbered line "N. title - duration - method".
// Duration and method are only taken from a fully formed three-part
// line; anything less keeps both defaults.
func parseActionLine(line string, cursor parseSection) parsedAction {
	text := itemRegex.ReplaceAllString(line, "")
	text = quoteRegex.ReplaceAllString(text, "")

	action := parsedAction{
		duration: defaultDuration,
		method:   defaultMethod,
		section:  cursor,
	}
	parts := strings.Split(text, " - ")
	action.title = strings.TrimSpace(parts[0])
	if len(parts) >= 3 {
		if d := strings.TrimSpace(parts[1]); d != "" {
			action.duration = d
		}
		if m := strings.TrimSpace(parts[2]); m != "" {
			action.method = m
		}
	}
	return action
}

func trimAfterLabel(line, label string) string {
	if idx := strings.Index(line, label); idx >= 0 {
		return strings.TrimSpace(line[idx+len(label):])
	}
	return ""
}

// defaultActions is substituted when a strategy body has no numbered
// items at all, so a strategy is never presented actionless.
func defaultActions() []parsedAction {
	return []parsedAction{
		{title: "전략 분석 및 기획", duration: "1-2일", method: defaultMethod, section: cursorPreparation},
		{title: "콘텐츠 제작", duration: "3-5일", method: defaultMethod, section: cursorContent},
		{title: "SNS 마케팅 실행", duration: "7-14일", method: defaultMethod, section: cursorExecution},
		{title: "효과 분석 및 개선", duration: "2-3일", method: defaultMethod, section: cursorExecution},
	}
}

func convertActions(actions []parsedAction) []ActionPlan {
	plans := make([]ActionPlan, 0, len(actions))
	for i, a := range actions {
		plans = append(plans, ActionPlan{
			Title:         a.title,
			Description:   a.duration + " - " + a.method,
			Icon:          sectionIcon(a.section),
			Section:       sectionTag(a.section),
			DaysFromStart: i * 2,
		})
	}
	return plans
}

func sectionTag(cursor parseSection) Section {
	switch cursor {
	case cursorContent:
		return SectionContent
	case cursorExecution:
		return SectionEvent
	default:
		return SectionPreparation
	}
}

func sectionIcon(cursor parseSection) string {
	switch cursor {
	case cursorContent:
		return "✨"
	case cursorExecution:
		return "🚀"
	default:
		return "🎯"
	}
}
