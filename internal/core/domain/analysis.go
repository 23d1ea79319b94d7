package domain

// PolicyAnalysis is the structured extraction result for a policy
// document. Fields the model could not determine carry the defaults
// from DefaultPolicyAnalysis rather than being absent.
type PolicyAnalysis struct {
	PolicyType          string   `json:"policy_type"`
	Provider            string   `json:"provider"`
	PolicyNumber        string   `json:"policy_number"`
	CoverageAmount      string   `json:"coverage_amount"`
	Premium             string   `json:"premium"`
	Deductible          string   `json:"deductible"`
	ExpirationDate      string   `json:"expiration_date"`
	Coverage            string   `json:"coverage"`
	Exclusions          string   `json:"exclusions"`
	ClaimProcess        string   `json:"claim_process"`
	KeyFeatures         []string `json:"key_features"`
	ClaimReadinessScore int      `json:"claim_readiness_score"`
}

// DefaultPolicyAnalysis returns the typed default record used when
// structured extraction fails to parse. Parse failure is a local,
// recoverable condition, never surfaced as a hard error.
func DefaultPolicyAnalysis() PolicyAnalysis {
	return PolicyAnalysis{
		PolicyType:          "Unknown",
		Provider:            "Unknown Provider",
		CoverageAmount:      "Not specified",
		Premium:             "Not specified",
		Deductible:          "Not specified",
		Coverage:            "Unable to determine coverage details.",
		Exclusions:          "Unable to determine exclusions.",
		ClaimProcess:        "Unable to determine claim process.",
		KeyFeatures:         []string{"Analysis unavailable"},
		ClaimReadinessScore: 0,
	}
}
