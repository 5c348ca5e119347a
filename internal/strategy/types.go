// Package strategy turns free-form marketing advice text into structured
// strategies and resolves their action plans onto concrete calendar dates.
package strategy

import "time"

// Section classifies an action plan by the phase of the strategy it belongs to.
type Section string

const (
	SectionPreparation Section = "preparation"
	SectionContent     Section = "content"
	SectionEvent       Section = "event"
	SectionPromotion   Section = "promotion"
)

// Mode says who carries out an action: the store owner or a hired expert.
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeExpert Mode = "expert"
)

// ActionPlan is one concrete step inside a strategy.
type ActionPlan struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	Section       Section `json:"section"`
	DaysFromStart int     `json:"daysFromStart"`
}

// Strategy is a complete marketing strategy presented to the store owner.
// StartDate and EndDate are display strings in Korean ("10월 20일 (월)");
// scheduling works off DaysFromStart, not these.
type Strategy struct {
	ID             int          `json:"id"`
	Code           string       `json:"code"`
	Title          string       `json:"title"`
	Duration       string       `json:"duration"`
	StartDate      string       `json:"startDate"`
	EndDate        string       `json:"endDate"`
	Summary        string       `json:"summary"`
	Reason         string       `json:"reason"`
	ExpectedEffect string       `json:"expectedEffect"`
	ActionPlans    []ActionPlan `json:"actionPlans"`
}

// ScheduledAction is a selected action plan bound to a concrete date,
// ready to be submitted to the calendar.
type ScheduledAction struct {
	StrategyID        int       `json:"strategyId"`
	StrategyCode      string    `json:"strategyCode"`
	StrategyTitle     string    `json:"strategyTitle"`
	ActionIndex       int       `json:"actionIndex"`
	ActionTitle       string    `json:"actionTitle"`
	ActionIcon        string    `json:"actionIcon"`
	ActionDescription string    `json:"actionDescription"`
	Date              time.Time `json:"date"`
	Mode              Mode      `json:"mode"`
	Section           Section   `json:"section"`
}
