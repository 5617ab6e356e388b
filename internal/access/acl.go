// Package access evaluates group rule strings. A rule string is a comma
// separated list of App:Action pairs where "*" matches anything.
package access

import "strings"

// AdminRules is the rule string that makes group members staff and superusers.
const AdminRules = "*:*"

// GrantsAdmin reports whether rules is exactly the admin rule string.
func GrantsAdmin(rules string) bool {
	return strings.TrimSpace(rules) == AdminRules
}

// MatchRules reports whether a single rule string allows app:action.
func MatchRules(rules, app, action string) bool {
	for _, rule := range strings.Split(rules, ",") {
		ruleApp, ruleAction, ok := strings.Cut(strings.TrimSpace(rule), ":")
		if !ok {
			continue
		}
		if ruleApp != "*" && ruleApp != app {
			continue
		}
		if ruleAction == "*" || ruleAction == action {
			return true
		}
	}
	return false
}

// ActionAllowed checks app:action against the rules of every group.
func ActionAllowed(groupRules []string, app, action string) bool {
	for _, rules := range groupRules {
		if MatchRules(rules, app, action) {
			return true
		}
	}
	return false
}
