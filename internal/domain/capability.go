package domain

// Capability names a role held by a staff member. Workflow preconditions and
// route guards consume capability sets, never the raw boolean columns, so a
// new role does not require touching every check.
type Capability string

const (
	CapSuperuser Capability = "superuser"
	CapHR        Capability = "hr"
	CapHOD       Capability = "hod"
	CapUnitHead  Capability = "unit_head"
	CapManager   Capability = "manager"
	CapEmployee  Capability = "employee"
)

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func (s CapabilitySet) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Strings returns the set in a stable-enough form for JWT claims and logs.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, c := range []Capability{CapSuperuser, CapHR, CapHOD, CapUnitHead, CapManager, CapEmployee} {
		if s.Has(c) {
			out = append(out, string(c))
		}
	}
	return out
}

// FromStrings rebuilds a set from JWT claim values, ignoring unknown entries.
func FromStrings(values []string) CapabilitySet {
	s := make(CapabilitySet, len(values))
	for _, v := range values {
		switch Capability(v) {
		case CapSuperuser, CapHR, CapHOD, CapUnitHead, CapManager, CapEmployee:
			s[Capability(v)] = struct{}{}
		}
	}
	return s
}
