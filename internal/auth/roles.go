package auth

import "sort"

// Well-known roles.
const (
	RoleAdmin = "Admin"
	RolePOC   = "POC"
)

// RoleSet is an unordered set of role names.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from the given roles, skipping empty names.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if role == "" {
			continue
		}
		set[role] = struct{}{}
	}
	return set
}

// Contains reports whether role is a member.
func (s RoleSet) Contains(role string) bool {
	_, ok := s[role]
	return ok
}

// Roles returns the members in sorted order.
func (s RoleSet) Roles() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// Policy maps operation ids to the roles required to invoke them. A
// registered operation with an empty role set admits any authenticated caller.
type Policy struct {
	operations map[string]RoleSet
}

// NewPolicy builds an immutable policy table.
func NewPolicy(table map[string][]string) *Policy {
	ops := make(map[string]RoleSet, len(table))
	for op, roles := range table {
		ops[op] = NewRoleSet(roles...)
	}
	return &Policy{operations: ops}
}

// RequiredRoles returns the role set for operation and whether it is registered.
func (p *Policy) RequiredRoles(operation string) (RoleSet, bool) {
	if p == nil {
		return nil, false
	}
	roles, ok := p.operations[operation]
	return roles, ok
}
