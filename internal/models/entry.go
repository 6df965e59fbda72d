package models

import (
	"errors"
	"fmt"
	"strings"
)

// NotApplicable is the explicit absent marker for enumerated fields.
const NotApplicable = "NA"

const noResponse = "No response"

// Ledger columns, in their fixed order.
const (
	ColStudy            = "Study"
	ColYear             = "Year"
	ColDomain           = "Domain"
	ColTRL              = "TRL"
	ColAI               = "AI"
	ColTargetedThreats  = "Targeted Threats"
	ColAttackScenarios  = "Attack Scenarios"
	ColFaultInjection   = "Fault Injection"
	ColEvaluationMethod = "Evaluation Method"
)

var Columns = []string{
	ColStudy,
	ColYear,
	ColDomain,
	ColTRL,
	ColAI,
	ColTargetedThreats,
	ColAttackScenarios,
	ColFaultInjection,
	ColEvaluationMethod,
}

// ErrPlaceholder is returned by Validate when a raw form placeholder
// survived into a record.
var ErrPlaceholder = errors.New("unprocessed form placeholder")

// Entry is one study in the ledger.
type Entry struct {
	Study            string `json:"study"`
	Year             string `json:"year"`
	Domain           string `json:"domain"`
	TRL              string `json:"trl"`
	AI               string `json:"ai"`
	TargetedThreats  string `json:"targeted_threats"`
	AttackScenarios  string `json:"attack_scenarios"`
	FaultInjection   string `json:"fault_injection"`
	EvaluationMethod string `json:"evaluation_method"`
}

// Values returns the fields in Columns order.
func (e Entry) Values() []string {
	return []string{
		e.Study,
		e.Year,
		e.Domain,
		e.TRL,
		e.AI,
		e.TargetedThreats,
		e.AttackScenarios,
		e.FaultInjection,
		e.EvaluationMethod,
	}
}

// Validate checks that no field, or no comma-separated part of one, is
// still the form's "No response" placeholder. Free text that merely
// contains the phrase is fine.
func (e Entry) Validate() error {
	for i, v := range e.Values() {
		for _, part := range strings.Split(v, ",") {
			if isPlaceholder(part) {
				return fmt.Errorf("%s: %q: %w", Columns[i], v, ErrPlaceholder)
			}
		}
	}
	return nil
}

func isPlaceholder(v string) bool {
	v = strings.Trim(strings.TrimSpace(v), "_*")
	return strings.EqualFold(strings.TrimSpace(v), noResponse)
}
