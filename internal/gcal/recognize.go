package gcal

import (
	"regexp"
	"strings"
)

// Tags written into events we create, so they can be re-recognized on a
// later fetch regardless of how the title was edited.
const (
	DescriptionTag = "[MARKETING_STRATEGY]"
	TitleTag       = "[전략]"
)

var (
	codeLabelRegex   = regexp.MustCompile(`(?i)전략 코드:\s*([A-Z0-9_]+)`)
	bracketCodeRegex = regexp.MustCompile(`\[([A-Z][A-Z0-9_]*)\]`)
	titleLabelRegex  = regexp.MustCompile(`전략:\s*([^\n]+)`)
	titleTagRegex    = regexp.MustCompile(`^\[전략\]\s*`)
	descTagRegex     = regexp.MustCompile(`^\[MARKETING_STRATEGY\]\n?`)
)

// defaultLegacyPhrases spot events created before the tagging scheme
// existed. Deliberately broad; the false-positive tradeoff is accepted
// for now and the list lives behind Recognizer so it can be tightened.
var defaultLegacyPhrases = []string{
	"전략 실행",
	"전략:",
	"실행 모드:",
	"📍 채널:",
	"📦 산출물:",
	"Influencer",
	"마케팅",
	"콘텐츠",
}

// Recognizer decides whether a remote calendar event belongs to this
// system and extracts its strategy metadata. Recognition is advisory:
// a miss means the event is shown as personal, never an error.
type Recognizer struct {
	LegacyPhrases []string
}

// NewRecognizer returns a recognizer with the default legacy phrase list.
func NewRecognizer() *Recognizer {
	return &Recognizer{LegacyPhrases: defaultLegacyPhrases}
}

// IsStrategyEvent reports whether the event was created by this system,
// by tag first and legacy phrases second.
func (r *Recognizer) IsStrategyEvent(summary, description string) bool {
	if strings.Contains(description, DescriptionTag) || strings.Contains(summary, TitleTag) {
		return true
	}
	for _, phrase := range r.LegacyPhrases {
		if strings.Contains(description, phrase) {
			return true
		}
	}
	return false
}

// IsTagged reports whether the event already carries an explicit tag,
// as opposed to matching only on legacy phrases.
func (r *Recognizer) IsTagged(summary, description string) bool {
	return strings.Contains(description, DescriptionTag) || strings.Contains(summary, TitleTag)
}

// ExtractStrategyCode finds the originating strategy code: the labeled
// form in the description first, then a bracketed code in the
// description, then in the title. Empty string when nothing matches;
// the event is still shown, just unfiled.
func (r *Recognizer) ExtractStrategyCode(summary, description string) string {
	if m := codeLabelRegex.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	if code := bracketedCode(description); code != "" {
		return code
	}
	return bracketedCode(summary)
}

// bracketedCode returns the first [CODE] match that is not the
// description tag itself.
func bracketedCode(s string) string {
	for _, m := range bracketCodeRegex.FindAllStringSubmatch(s, -1) {
		if "["+m[1]+"]" != DescriptionTag {
			return m[1]
		}
	}
	return ""
}

// ExtractStrategyTitle pulls the originating strategy's display title
// out of the description, or "" when absent.
func (r *Recognizer) ExtractStrategyTitle(description string) string {
	if m := titleLabelRegex.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// StripTags removes the internal tag markers from a title and
// description before display. Only a leading occurrence is removed:
// the same substring elsewhere is user content and stays intact.
func StripTags(summary, description string) (string, string) {
	return titleTagRegex.ReplaceAllString(summary, ""),
		descTagRegex.ReplaceAllString(description, "")
}

// EventIDPrefix marks calendar event IDs handed to the browser as
// Google-originated.
const EventIDPrefix = "gcal_"

// NormalizeEventID strips the synthetic origin prefix, repeatedly,
// since double-prefixed IDs have been seen in the wild.
func NormalizeEventID(id string) string {
	for strings.HasPrefix(id, EventIDPrefix) {
		id = strings.TrimPrefix(id, EventIDPrefix)
	}
	return id
}
