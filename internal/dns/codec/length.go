package codec

import (
	"strings"

	"github.com/kerren/dnswire/internal/dns/domain"
)

const (
	// MaxMessageSize is the classic single-datagram ceiling (RFC 1035 ยง4.2.1).
	MaxMessageSize = 512

	// headerSize is the fixed DNS header length.
	headerSize = 12

	// maxLabelSize is the largest domain-name label the 6-bit wire
	// length prefix can carry.
	maxLabelSize = 63

	// maxStringSize is the largest TXT character-string the 1-byte wire
	// length prefix can carry.
	maxStringSize = 255
)

// Size returns the exact number of bytes the wire encoding of m will
// occupy. It has no failure paths and no side effects; Encode relies on
// it to validate all size ceilings before writing a single byte.
//
// Names are always sized uncompressed because the formatter never emits
// compression pointers.
func Size(m *domain.Message) int {
	n := headerSize
	for _, q := range m.Questions {
		n += questionSize(q)
	}
	for _, r := range m.Answers {
		n += recordSize(r)
	}
	for _, r := range m.Authority {
		n += recordSize(r)
	}
	for _, r := range m.Additional {
		n += recordSize(r)
	}
	return n
}

// questionSize is the encoded name plus type and class.
func questionSize(q domain.Question) int {
	return nameSize(q.Name) + 4
}

// recordSize is the encoded name plus type, class, ttl, rdata length
// prefix and the rdata itself.
func recordSize(r domain.Record) int {
	return nameSize(r.Name) + 2 + 2 + 4 + 2 + rdataSize(r.Data)
}

func rdataSize(d domain.RData) int {
	switch d := d.(type) {
	case domain.AData:
		return 4
	case domain.AAAAData:
		return 16
	case domain.MXData:
		return 2 + nameSize(d.Exchange)
	case domain.PTRData:
		return nameSize(d.Name)
	case domain.RPData:
		return nameSize(d.Mailbox) + nameSize(d.TXTDomain)
	case domain.TXTData:
		n := 0
		for _, s := range d.Strings {
			n += charStringSize(s)
		}
		return n
	default:
		panic("codec: unknown rdata variant")
	}
}

// nameSize is the uncompressed wire length of a dotted name: one length
// byte plus the bytes of each label, plus the terminating zero label.
func nameSize(name string) int {
	n := 0
	for _, label := range strings.Split(name, ".") {
		n += 1 + len(label)
	}
	return n + 1
}

func charStringSize(s string) int {
	return 1 + len(s)
}
