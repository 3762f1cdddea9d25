package constant

// ActivityTopic is the in-process event bus topic every session
// activity event is published to.
const ActivityTopic = "GATEWAY_ACTIVITY"

// SuggestionChips are the starter questions offered on an empty
// conversation.
var SuggestionChips = []string{
	"Benefit for major broken bone?",
	"What is max age to apply for policy?",
	"What is MetLife?",
	"What is Mortgage?",
}

// GuidedQuestions is the preset smoke-test sequence dispatched by the
// guided flow, strictly one at a time.
var GuidedQuestions = []string{
	"How much will unit 3 pay out for a major broken bone?",
	"How many claims can I make on the active lifestyle policy?",
	"What is the max age to apply for a policy?",
	"A policyholder receives £4,500 for fractures from an accident. Later dies from that same accident. Accidental death = £50,000 per unit * 2 units = £100,000. How much is paid?",
	"If premiums remain constant, how much more will you pay in premiums between years 5 and 15 (inclusive) than between years 1 and 5 (inclusive) for a 1-unit core+child policy? Core 1 unit = £10, child 1 unit = £2.",
	"Can borrowers repay the loan early?",
	"When does the Lifetime Mortgage become repayable?",
	"When does a Member's cover terminate?",
	"What documents are required for a death claim?",
}
