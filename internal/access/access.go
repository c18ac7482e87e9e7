// Package access holds the role capability check. Callers resolve the
// member's role IDs at the Discord boundary; the check itself is a plain
// set intersection with no gateway dependency.
package access

// RoleSet is a set of Discord role IDs.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from the given role IDs.
func NewRoleSet(ids ...string) RoleSet {
	s := make(RoleSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// ContainsAny reports whether any of the given role IDs is in the set.
func (s RoleSet) ContainsAny(ids []string) bool {
	for _, id := range ids {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}
