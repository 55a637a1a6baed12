package domain

type SkipReason string

const (
	SkipReasonOneTime     SkipReason = "ONE_TIME"
	SkipReasonInvalidDate SkipReason = "INVALID_DATE"
)

type SkippedRule struct {
	RuleName string     `json:"ruleName"`
	Reason   SkipReason `json:"reason"`
}

// PropagationResult - план переноса правил на следующий месяц
// Планировщик сам ничего не сохраняет, создание правил выполняется отдельным шагом
type PropagationResult struct {
	CanProceed    bool            `json:"canProceed"`
	RulesToCreate []PatternConfig `json:"rulesToCreate"`
	SkippedRules  []SkippedRule   `json:"skippedRules"`
}
