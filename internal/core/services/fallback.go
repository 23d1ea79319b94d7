package services

import "strings"

// FallbackName is the backend label reported when the rule-based
// responder answers.
const FallbackName = "rule-based"

// fallbackRule maps question keywords to a canned response. Rules are
// checked in order; the first rule with a matching keyword wins.
type fallbackRule struct {
	keywords []string
	response string
}

// Keyword rules mirror the questions policyholders actually ask.
// Every response names its own category so callers and tests can tell
// which rule fired.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"premium", "cost", "price", "pay"},
		response: "Your premium is the amount you pay for insurance coverage. " +
			"The exact premium for this policy is stated in the policy schedule. " +
			"Premiums are typically paid monthly, quarterly or annually, and " +
			"depend on the sum insured, your age and the plan chosen.",
	},
	{
		keywords: []string{"claim", "reimburse", "settlement", "hospitalis", "hospitaliz"},
		response: "To file a claim, notify your insurer as soon as possible and " +
			"submit the claim form along with supporting documents such as bills, " +
			"discharge summaries and prescriptions. Cashless claims require " +
			"pre-authorisation at a network hospital. Refer to the claim process " +
			"section of your policy document for timelines.",
	},
	{
		keywords: []string{"exclusion", "not covered", "excluded", "waiting period"},
		response: "Exclusions are conditions and expenses your policy does not " +
			"cover, such as pre-existing diseases during the waiting period, " +
			"cosmetic procedures and self-inflicted injuries. Check the " +
			"exclusions section of your policy document for the complete list.",
	},
	{
		keywords: []string{"sum insured", "limit", "maximum"},
		response: "The sum insured is the maximum amount your insurer will pay " +
			"for covered claims in a policy year. It is stated in your policy " +
			"schedule and resets at each renewal.",
	},
	{
		keywords: []string{"cover", "benefit", "include"},
		response: "Your coverage is defined by the benefits listed in the policy " +
			"schedule, typically including hospitalisation, day-care procedures " +
			"and ambulance charges. Review the coverage section of your policy " +
			"document for the benefits that apply to your plan.",
	},
}

const fallbackDefault = "I could not reach an answering service right now. " +
	"Please consult your policy document directly, or contact your insurer's " +
	"customer support for help with this question."

// FallbackAnswer produces a deterministic, offline answer for a
// question. It never fails; unmatched questions get a generic referral
// to the policy document.
func FallbackAnswer(question string) string {
	q := strings.ToLower(question)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.response
			}
		}
	}
	return fallbackDefault
}
