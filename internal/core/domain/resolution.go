package domain

// ResolutionState tracks one type through EnsureDeclared.
type ResolutionState uint8

const (
	// StateUnresolved is the zero state of a type nobody asked for yet.
	StateUnresolved ResolutionState = iota
	// StateResolvingSupertype is set while the supertypes are being declared.
	StateResolvingSupertype
	// StateResolvingInterfaces is set while the interfaces are being declared.
	StateResolvingInterfaces
	// StateMaterializing is set while the defining file is loaded.
	StateMaterializing
	// StateDeclared is terminal: the type exists in the runtime.
	StateDeclared
	// StateFailed is terminal for one attempt; the next request retries.
	StateFailed
)

// String returns the upper-case name of the state.
func (s ResolutionState) String() string {
	switch s {
	case StateUnresolved:
		return "UNRESOLVED"
	case StateResolvingSupertype:
		return "RESOLVING_SUPERTYPE"
	case StateResolvingInterfaces:
		return "RESOLVING_INTERFACES"
	case StateMaterializing:
		return "MATERIALIZING"
	case StateDeclared:
		return "DECLARED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// InFlight reports whether the type is midway through resolution.
func (s ResolutionState) InFlight() bool {
	return s == StateResolvingSupertype || s == StateResolvingInterfaces || s == StateMaterializing
}
