package curator

import (
	"strings"

	"github.com/K0NGR3SS/slrledger/internal/issueform"
	"github.com/K0NGR3SS/slrledger/internal/models"
	"github.com/K0NGR3SS/slrledger/internal/vocabulary"
)

// Picks are the reconciled values of the vocabulary-backed fields.
type Picks struct {
	Domain          string
	AttackScenarios string
	FaultInjection  string
}

// Assemble builds the ledger entry. Free-form fields (study, year) stay
// empty when unanswered; enumerated fields fall back to NA.
func Assemble(sub *issueform.Submission, picks Picks) models.Entry {
	return models.Entry{
		Study:            sub.Value(models.LabelStudyID),
		Year:             sub.Value(models.LabelYear),
		Domain:           orNA(picks.Domain),
		TRL:              orNA(sub.Value(models.LabelTRL)),
		AI:               orNA(sub.Value(models.LabelAI)),
		TargetedThreats:  orNA(vocabulary.ThreatCodes(sub.Values(models.LabelTargetedThreats))),
		AttackScenarios:  orNA(picks.AttackScenarios),
		FaultInjection:   orNA(picks.FaultInjection),
		EvaluationMethod: orNA(strings.Join(sub.Values(models.LabelEvaluationMethod), vocabulary.Separator)),
	}
}

func orNA(v string) string {
	if v == "" {
		return models.NotApplicable
	}
	return v
}
