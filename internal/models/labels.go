package models

// Issue form labels. The form generator writes them and the extractor reads
// them back, so both sides must use these constants.
const (
	LabelStudyID          = "Study ID"
	LabelYear             = "Year"
	LabelDomain           = "Domain"
	LabelDomainOther      = "If Domain is 'Other', please specify below"
	LabelTRL              = "TRL"
	LabelAI               = "AI-based"
	LabelTargetedThreats  = "Targeted Threats"
	LabelAttackScenarios  = "Attack Scenarios"
	LabelAttackOther      = "If Attack Scenarios is 'Other', please specify below"
	LabelFaultInjection   = "Fault Injection"
	LabelFaultOther       = "If Fault Injection is 'Other', please specify below"
	LabelEvaluationMethod = "Evaluation Method"
)
