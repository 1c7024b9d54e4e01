package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// Only the small RFC 1035 subset handled by this codec is listed.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA    RRType = 1   // A - IPv4 address
	RRTypePTR  RRType = 12  // PTR - Pointer
	RRTypeMX   RRType = 15  // MX - Mail exchange
	RRTypeTXT  RRType = 16  // TXT - Text
	RRTypeRP   RRType = 17  // RP - Responsible person
	RRTypeAAAA RRType = 28  // AAAA - IPv6 address
	RRTypeALL  RRType = 255 // ALL - All types (query only)
)

// IsValid returns true if the RRType is one of the supported types.
func (t RRType) IsValid() bool {
	switch t {
	case RRTypeA, RRTypePTR, RRTypeMX, RRTypeTXT, RRTypeRP, RRTypeAAAA, RRTypeALL:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypePTR:
		return "PTR"
	case RRTypeMX:
		return "MX"
	case RRTypeTXT:
		return "TXT"
	case RRTypeRP:
		return "RP"
	case RRTypeAAAA:
		return "AAAA"
	case RRTypeALL:
		return "ALL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
	}
}

// RRTypeFromString converts a record type string to its corresponding RRType value.
// Returns 0 for unknown strings.
func RRTypeFromString(s string) RRType {
	switch s {
	case "A":
		return RRTypeA
	case "PTR":
		return RRTypePTR
	case "MX":
		return RRTypeMX
	case "TXT":
		return RRTypeTXT
	case "RP":
		return RRTypeRP
	case "AAAA":
		return RRTypeAAAA
	case "ALL":
		return RRTypeALL
	default:
		return 0
	}
}
