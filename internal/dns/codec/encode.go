// Package codec encodes and decodes DNS messages in the RFC 1035 wire
// format. Encoding writes into a caller-provided buffer after computing
// the exact message size; decoding works on a borrowed slice with a
// forward cursor and never retains the input.
package codec

import (
	"strings"

	"github.com/kerren/dnswire/internal/dns/domain"
)

// Flag bit positions inside the two header flag bytes.
const (
	flagResponse           = 1 << 7 // flags1
	flagAuthoritative      = 1 << 2 // flags1
	flagTruncated          = 1 << 1 // flags1
	flagRecursionDesired   = 1 << 0 // flags1
	flagRecursionAvailable = 1 << 7 // flags2
	opCodeShift            = 3      // flags1 bits 3-5
)

// Encode writes the wire encoding of m into dst and returns the number
// of bytes written.
//
// The exact encoded size is computed first: if it exceeds
// MaxMessageSize, Encode fails with ErrMessageTooLarge; if dst is
// shorter than the encoded size, it fails with BufferTooSmallError. In
// both cases dst is untouched. Label and character-string ceilings are
// checked during the write; on those failures the returned count is
// zero and dst contents are unspecified.
//
// Section counts are taken from the live slice lengths; each record's
// type code is derived from the RData variant it actually holds.
func Encode(m *domain.Message, dst []byte) (int, error) {
	size := Size(m)
	if size > MaxMessageSize {
		return 0, ErrMessageTooLarge
	}
	if size > len(dst) {
		return 0, &BufferTooSmallError{Required: size}
	}

	w := &writer{buf: dst}
	w.putUint16(m.ID)

	var flags1 uint8
	if !m.IsQuery {
		flags1 |= flagResponse
	}
	flags1 |= uint8(m.Kind) << opCodeShift
	if m.Authoritative {
		flags1 |= flagAuthoritative
	}
	if m.Truncated {
		flags1 |= flagTruncated
	}
	if m.RecursionDesired {
		flags1 |= flagRecursionDesired
	}
	w.putUint8(flags1)

	var flags2 uint8
	if m.RecursionAvailable {
		flags2 |= flagRecursionAvailable
	}
	flags2 |= uint8(m.RCode)
	w.putUint8(flags2)

	w.putUint16(uint16(len(m.Questions)))
	w.putUint16(uint16(len(m.Answers)))
	w.putUint16(uint16(len(m.Authority)))
	w.putUint16(uint16(len(m.Additional)))

	for _, q := range m.Questions {
		if err := encodeQuestion(w, q); err != nil {
			return 0, err
		}
	}
	for _, sec := range [][]domain.Record{m.Answers, m.Authority, m.Additional} {
		for _, r := range sec {
			if err := encodeRecord(w, r); err != nil {
				return 0, err
			}
		}
	}
	return w.pos, nil
}

func encodeQuestion(w *writer, q domain.Question) error {
	if err := encodeName(w, q.Name); err != nil {
		return err
	}
	w.putUint16(uint16(q.Type))
	w.putUint16(uint16(q.Class))
	return nil
}

func encodeRecord(w *writer, r domain.Record) error {
	if err := encodeName(w, r.Name); err != nil {
		return err
	}
	w.putUint16(uint16(r.Data.RRType()))
	w.putUint16(uint16(r.Class))
	w.putUint32(uint32(r.TTL))
	w.putUint16(uint16(rdataSize(r.Data)))
	return encodeRData(w, r.Data)
}

func encodeRData(w *writer, d domain.RData) error {
	switch d := d.(type) {
	case domain.AData:
		a := d.Addr.As4()
		w.putBytes(a[:])
	case domain.AAAAData:
		a := d.Addr.As16()
		w.putBytes(a[:])
	case domain.MXData:
		w.putUint16(uint16(d.Preference))
		return encodeName(w, d.Exchange)
	case domain.PTRData:
		return encodeName(w, d.Name)
	case domain.RPData:
		if err := encodeName(w, d.Mailbox); err != nil {
			return err
		}
		return encodeName(w, d.TXTDomain)
	case domain.TXTData:
		for _, s := range d.Strings {
			if err := encodeCharString(w, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeName writes a dotted name as length-prefixed labels followed by
// the terminating zero label. Compression pointers are never emitted.
func encodeName(w *writer, name string) error {
	for _, label := range strings.Split(name, ".") {
		if len(label) > maxLabelSize {
			return &LabelTooLongError{Length: len(label)}
		}
		w.putUint8(uint8(len(label)))
		w.putString(label)
	}
	w.putUint8(0)
	return nil
}

func encodeCharString(w *writer, s string) error {
	if len(s) > maxStringSize {
		return &StringTooLongError{Length: len(s)}
	}
	w.putUint8(uint8(len(s)))
	w.putString(s)
	return nil
}
