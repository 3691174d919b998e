package speaker

import "strings"

// Instruction verbs that follow a principal alias in relayed speech, e.g.
// "chairman said we need the report by Friday".
var relayVerbs = []string{"said", "says", "instructed", "requested", "asked", "wants", "told us"}

// Generic imperative verbs that mark relayed action items on their own.
var imperativeKeywords = []string{"complete", "execute", "submit", "handle", "arrange", "prepare", "follow up"}

// Detector scans message text for signs that an unrelated speaker is
// relaying a principal's instruction. It is deliberately broad: a false
// positive only costs an extra external-classifier call, which makes the
// finer judgment.
type Detector struct {
	keywords []string
}

// NewDetector builds the fixed keyword table from the roster's principal
// aliases plus the generic imperative verbs.
func NewDetector(roster *Roster) *Detector {
	var keywords []string
	for _, alias := range roster.PrincipalAliases() {
		for _, verb := range relayVerbs {
			keywords = append(keywords, alias+" "+verb)
		}
	}
	keywords = append(keywords, imperativeKeywords...)
	return &Detector{keywords: keywords}
}

// ContainsTrigger reports whether any relay keyword appears in the text.
// Matching is case-insensitive substring; a single hit is enough.
func (d *Detector) ContainsTrigger(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range d.keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
