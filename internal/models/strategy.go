package models

import "fmt"

// Strategy selects how the set of interfaces to implement is declared
type Strategy int

const (
	// StrategyNamed reads interface names from the marker on the target type
	StrategyNamed Strategy = iota
	// StrategyQualified is StrategyNamed rendering fully-qualified type names
	StrategyQualified
	// StrategyInherited marks interfaces; implementing types are discovered from base lists
	StrategyInherited
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyNamed:
		return "named"
	case StrategyQualified:
		return "qualified"
	case StrategyInherited:
		return "inherited"
	default:
		return "unknown"
	}
}

// MarksInterfaces reports whether the marker decorates interfaces instead of target types
func (s Strategy) MarksInterfaces() bool {
	return s == StrategyInherited
}

// ParseStrategy converts a string to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "named", "1":
		return StrategyNamed, nil
	case "qualified", "2":
		return StrategyQualified, nil
	case "inherited", "3":
		return StrategyInherited, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %s", s)
	}
}

// TypePolicy decides how property types are spelled in generated code
type TypePolicy int

const (
	// PolicyDisplay keeps the source spelling and propagates the interface's imports
	PolicyDisplay TypePolicy = iota
	// PolicyQualified spells every resolvable type as global::Full.Name and needs no imports
	PolicyQualified
)

// Policy returns the canonicalization policy applied by the strategy
func (s Strategy) Policy() TypePolicy {
	if s == StrategyQualified {
		return PolicyQualified
	}
	return PolicyDisplay
}
