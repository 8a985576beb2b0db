package model

import "strings"

// Roster is a read-only set of GitHub logins compared case-insensitively.
type Roster struct {
	members map[string]struct{}
	order   []string
}

// NewRoster builds a roster from a list of logins. Empty entries are
// dropped; duplicates collapse.
func NewRoster(logins []string) Roster {
	r := Roster{members: make(map[string]struct{}, len(logins))}
	for _, l := range logins {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if _, ok := r.members[key]; ok {
			continue
		}
		r.members[key] = struct{}{}
		r.order = append(r.order, l)
	}
	return r
}

// Contains reports whether login belongs to the roster.
func (r Roster) Contains(login string) bool {
	if login == "" {
		return false
	}
	_, ok := r.members[strings.ToLower(login)]
	return ok
}

// Len returns the number of distinct members.
func (r Roster) Len() int { return len(r.members) }

// Members returns the logins in the order first supplied.
func (r Roster) Members() []string { return r.order }

// SameLogin compares two logins the way every extractor attributes events:
// case-insensitively.
func SameLogin(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
