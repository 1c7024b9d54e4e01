package domain

import (
	"fmt"
	"net/netip"
	"strings"
)

// RData is the closed set of record payload variants supported by the
// codec. Each variant maps to exactly one RRType via RRType(); the
// reverse mapping (wire code to variant) lives in the codec's record
// decoder and the two must stay in lockstep.
//
// The interface is sealed: only the variants in this file implement it.
type RData interface {
	// RRType returns the on-wire record type implied by the variant.
	RRType() RRType

	rdata()
}

// AData is an IPv4 address record payload.
type AData struct {
	Addr netip.Addr
}

// AAAAData is an IPv6 address record payload.
type AAAAData struct {
	Addr netip.Addr
}

// MXData is a mail-exchange record payload.
//
// Preference is signed on the wire in the upstream data model; lower
// values are preferred.
type MXData struct {
	Preference int16
	Exchange   string
}

// PTRData is a domain-name pointer record payload.
type PTRData struct {
	Name string
}

// RPData is a responsible-person record payload: a mailbox domain name
// and a domain name locating TXT records with further information.
type RPData struct {
	Mailbox   string
	TXTDomain string
}

// TXTData is a text record payload holding one or more character-strings.
type TXTData struct {
	Strings []string
}

// RRType implementations. Kept together so the variant set and its
// type codes can be reviewed at a glance.

func (AData) RRType() RRType    { return RRTypeA }
func (AAAAData) RRType() RRType { return RRTypeAAAA }
func (MXData) RRType() RRType   { return RRTypeMX }
func (PTRData) RRType() RRType  { return RRTypePTR }
func (RPData) RRType() RRType   { return RRTypeRP }
func (TXTData) RRType() RRType  { return RRTypeTXT }

func (AData) rdata()    {}
func (AAAAData) rdata() {}
func (MXData) rdata()   {}
func (PTRData) rdata()  {}
func (RPData) rdata()   {}
func (TXTData) rdata()  {}

// String implementations produce the conventional presentation form of
// each payload.

func (d AData) String() string    { return d.Addr.String() }
func (d AAAAData) String() string { return d.Addr.String() }
func (d MXData) String() string   { return fmt.Sprintf("%d %s", d.Preference, d.Exchange) }
func (d PTRData) String() string  { return d.Name }
func (d RPData) String() string   { return d.Mailbox + " " + d.TXTDomain }

func (d TXTData) String() string {
	quoted := make([]string, 0, len(d.Strings))
	for _, s := range d.Strings {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return strings.Join(quoted, " ")
}
