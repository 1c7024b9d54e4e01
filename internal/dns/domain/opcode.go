package domain

import "fmt"

// OpCode represents the kind of a DNS query.
type OpCode uint8

// DNS query kind constants
const (
	OpCodeStandard OpCode = 0 // QUERY - Standard query
	OpCodeInverse  OpCode = 1 // IQUERY - Inverse query
	OpCodeStatus   OpCode = 2 // STATUS - Server status request
)

// IsValid returns true if the OpCode is one of the supported query kinds.
func (o OpCode) IsValid() bool {
	return o <= 2
}

// String returns the textual representation of the OpCode.
func (o OpCode) String() string {
	switch o {
	case OpCodeStandard:
		return "QUERY"
	case OpCodeInverse:
		return "IQUERY"
	case OpCodeStatus:
		return "STATUS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
