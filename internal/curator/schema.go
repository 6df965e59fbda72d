package curator

import (
	"github.com/K0NGR3SS/slrledger/internal/config"
	"github.com/K0NGR3SS/slrledger/internal/formgen"
	"github.com/K0NGR3SS/slrledger/internal/models"
	"github.com/K0NGR3SS/slrledger/internal/vocabulary"
)

// Vocabulary names, also the JSON file stems under the vocabulary dir.
const (
	VocabDomains         = "domains"
	VocabAttackScenarios = "attack_scenarios"
	VocabFaultInjection  = "fault_injection"
)

// VocabularySpecs fixes the insert policy of each vocabulary. Domains and
// attack scenarios are stored without sentinels (the form adds them), so new
// values go at the end. The fault list stores its sentinels, so new codes
// go in front of them.
var VocabularySpecs = []vocabulary.Spec{
	{Name: VocabDomains, Policy: vocabulary.Append},
	{Name: VocabAttackScenarios, Policy: vocabulary.Append},
	{Name: VocabFaultInjection, Policy: vocabulary.BeforeSentinels},
}

var (
	trlOptions        = []string{"1-3", "4-6", "7-9", models.NotApplicable}
	aiOptions         = []string{"Yes", "No"}
	evaluationOptions = []string{"Empirical", "Analytical", "Simulation", models.NotApplicable}
	threatOptions     = []string{
		"S (Spoofing)",
		"T (Tampering)",
		"R (Repudiation)",
		"I (Information Disclosure)",
		"D (Denial of Service)",
		"E (Elevation of Privilege)",
		models.NotApplicable,
	}
)

const intro = "Use this form to add a study to the systematic literature review. " +
	"If a value is missing from a list, pick \"Other (please specify below)\" and type it in the matching field; " +
	"it will be added to the list for future submissions."

// Schema is the static issue form. Labels are shared with the extractor.
func Schema(fc config.FormConfig) formgen.Schema {
	sentinels := vocabulary.DefaultSentinels

	return formgen.Schema{
		Name:        fc.Name,
		Description: fc.Description,
		Title:       fc.Title,
		Labels:      fc.Labels,
		Fields: []formgen.Field{
			{Type: formgen.TypeMarkdown, Value: intro},
			{
				Type:        formgen.TypeInput,
				ID:          "study_id",
				Label:       models.LabelStudyID,
				Description: "DOI or other stable identifier of the study",
				Placeholder: "10.5281/zenodo.XXXXXXX",
				Required:    true,
			},
			{Type: formgen.TypeInput, ID: "year", Label: models.LabelYear, Placeholder: "2024", Required: true},
			{
				Type:       formgen.TypeDropdown,
				ID:         "domain",
				Label:      models.LabelDomain,
				Vocabulary: VocabDomains,
				Sentinels:  sentinels,
				Required:   true,
			},
			{Type: formgen.TypeInput, ID: "domain_other", Label: models.LabelDomainOther},
			{Type: formgen.TypeDropdown, ID: "trl", Label: models.LabelTRL, Options: trlOptions, Required: true},
			{Type: formgen.TypeDropdown, ID: "ai", Label: models.LabelAI, Options: aiOptions, Required: true},
			{
				Type:     formgen.TypeDropdown,
				ID:       "targeted_threats",
				Label:    models.LabelTargetedThreats,
				Multiple: true,
				Options:  threatOptions,
				Required: true,
			},
			{
				Type:       formgen.TypeDropdown,
				ID:         "attack_scenarios",
				Label:      models.LabelAttackScenarios,
				Multiple:   true,
				Vocabulary: VocabAttackScenarios,
				Sentinels:  sentinels,
				Required:   true,
			},
			{Type: formgen.TypeInput, ID: "attack_scenarios_other", Label: models.LabelAttackOther},
			{
				Type:       formgen.TypeDropdown,
				ID:         "fault_injection",
				Label:      models.LabelFaultInjection,
				Multiple:   true,
				Vocabulary: VocabFaultInjection,
				Sentinels:  sentinels,
				Required:   true,
			},
			{
				Type:        formgen.TypeInput,
				ID:          "fault_injection_other",
				Label:       models.LabelFaultOther,
				Description: "Comma-separated. Each new fault type is assigned the next T-code.",
			},
			{
				Type:     formgen.TypeDropdown,
				ID:       "evaluation_method",
				Label:    models.LabelEvaluationMethod,
				Multiple: true,
				Options:  evaluationOptions,
				Required: true,
			},
		},
	}
}
