// Package classify assigns semantic roles to the columns of a RawTable.
package classify

import (
	"strings"
	"unicode"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// Rule maps a predicate over column samples to a role.
type Rule struct {
	// Name identifies the rule in decisions and logs.
	Name string
	// Role is assigned when Match reports true for any sample.
	Role models.ColumnRole
	// Match tests a single sample value.
	Match func(sample string) bool
}

// minPhoneRun is the shortest run of phone characters that marks a column
// as a phone column.
const minPhoneRun = 7

// DefaultRules returns the heuristics in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "contains-at", Role: models.RoleEmail, Match: looksLikeEmail},
		{Name: "multiword-non-latin", Role: models.RoleName, Match: looksLikeName},
		{Name: "phone-run", Role: models.RolePhone, Match: looksLikePhone},
	}
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}

// looksLikeName matches two or more words with at least one letter outside
// basic Latin.
func looksLikeName(s string) bool {
	if len(strings.Fields(s)) < 2 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// looksLikePhone matches a run of digits, '+', '-', '(', ')' and spaces.
func looksLikePhone(s string) bool {
	run := 0
	for _, r := range s {
		if isPhoneRune(r) {
			run++
			if run >= minPhoneRun {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

func isPhoneRune(r rune) bool {
	switch r {
	case '+', '-', '(', ')':
		return true
	}
	return unicode.IsDigit(r) || unicode.IsSpace(r)
}

// matchAny returns the first rule matching any of the samples.
func matchAny(rules []Rule, samples []string) (Rule, bool) {
	for _, rule := range rules {
		for _, s := range samples {
			if rule.Match(s) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}
