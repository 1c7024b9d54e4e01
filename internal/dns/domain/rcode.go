package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// DNS response code constants
const (
	RCodeOK             RCode = 0 // NOERROR - No error
	RCodeFormatError    RCode = 1 // FORMERR - Format error
	RCodeServerFailure  RCode = 2 // SERVFAIL - Server failure
	RCodeNameError      RCode = 3 // NXDOMAIN - Name error
	RCodeNotImplemented RCode = 4 // NOTIMP - Not implemented
	RCodeRefused        RCode = 5 // REFUSED - Refused
)

// IsValid returns true if the RCode is within the supported response code range.
func (r RCode) IsValid() bool {
	return r <= 5
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeOK:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}
