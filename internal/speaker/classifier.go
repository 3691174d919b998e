package speaker

import "strings"

// Category is the role bucket a display name resolves to.
type Category string

const (
	CategoryPrincipal Category = "principal"
	CategoryDelegate  Category = "delegate"
	CategoryOther     Category = "other"
)

// Result is the outcome of classifying one display name.
type Result struct {
	Relevant  bool
	Category  Category
	RoleLabel string
}

var roleLabels = map[Category]string{
	CategoryPrincipal: "Principal",
	CategoryDelegate:  "Delegate",
	CategoryOther:     "",
}

// Default alias tables. Principal aliases include honorifics and the short
// forms that show up in group display names; delegate aliases cover the
// usual stand-in titles. Overridable at startup via config.
var (
	DefaultPrincipalAliases = []string{"chairman", "chair wang", "the chief", "boss"}
	DefaultDelegateAliases  = []string{"secretary", "assistant", "deputy", "aide"}
)

// Roster holds the immutable alias tables used to classify speakers.
// Built once at startup and never mutated afterwards.
type Roster struct {
	principal []string
	delegate  []string
}

// NewRoster builds a roster from alias lists. Empty lists fall back to the
// defaults. Aliases are matched case-insensitively, so they are lowered here
// once.
func NewRoster(principalAliases, delegateAliases []string) *Roster {
	if len(principalAliases) == 0 {
		principalAliases = DefaultPrincipalAliases
	}
	if len(delegateAliases) == 0 {
		delegateAliases = DefaultDelegateAliases
	}
	return &Roster{
		principal: lowerAll(principalAliases),
		delegate:  lowerAll(delegateAliases),
	}
}

// Classify maps a display name to a role category. A name matches a list if
// it contains any alias as a case-insensitive substring. Principal is checked
// first and wins when both lists match. Substring matching accepts partial
// and transliterated forms at the cost of false positives on short aliases.
func (r *Roster) Classify(displayName string) Result {
	name := strings.ToLower(strings.TrimSpace(displayName))
	if name != "" {
		if containsAny(name, r.principal) {
			return Result{Relevant: true, Category: CategoryPrincipal, RoleLabel: roleLabels[CategoryPrincipal]}
		}
		if containsAny(name, r.delegate) {
			return Result{Relevant: true, Category: CategoryDelegate, RoleLabel: roleLabels[CategoryDelegate]}
		}
	}
	return Result{Relevant: false, Category: CategoryOther, RoleLabel: roleLabels[CategoryOther]}
}

// PrincipalAliases returns a copy of the principal alias table, already
// lowercased. The relay detector derives its principal-says phrases from it.
func (r *Roster) PrincipalAliases() []string {
	out := make([]string, len(r.principal))
	copy(out, r.principal)
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub == "" {
			continue
		}
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
