package codec

import (
	"net/netip"
	"strings"
	"unicode/utf8"

	"github.com/kerren/dnswire/internal/dns/domain"
)

// maxPointerHops caps how many compression pointers a single name may
// chase. Legitimate chains are short; a chain this long is either a
// loop or crafted input, and either way decoding stops with ErrParse
// instead of recursing without bound.
const maxPointerHops = 16

// Decode parses one DNS message from the start of src and returns the
// number of bytes consumed together with the decoded message.
//
// Questions are decoded strictly: any failure aborts the whole parse.
// Records with an unrecognized type or class are skipped over using
// their declared rdata length when enough bytes remain, and abort the
// parse otherwise. All failures surface as ErrParse.
//
// src is borrowed for the duration of the call; the returned message
// owns all of its decoded fields.
func Decode(src []byte) (int, *domain.Message, error) {
	r := &reader{buf: src}

	id, err := r.readUint16()
	if err != nil {
		return 0, nil, err
	}
	flags, err := r.readUint16()
	if err != nil {
		return 0, nil, err
	}
	kind := domain.OpCode((flags >> 11) & 0xF)
	if !kind.IsValid() {
		return 0, nil, ErrParse
	}
	rcode := domain.RCode(flags & 0xF)
	if !rcode.IsValid() {
		return 0, nil, ErrParse
	}

	msg := &domain.Message{
		ID:                 id,
		IsQuery:            flags&0x8000 == 0,
		Kind:               kind,
		Authoritative:      flags&0x0400 != 0,
		Truncated:          flags&0x0200 != 0,
		RecursionDesired:   flags&0x0100 != 0,
		RecursionAvailable: flags&0x0080 != 0,
		RCode:              rcode,
	}

	var counts [4]uint16
	for i := range counts {
		if counts[i], err = r.readUint16(); err != nil {
			return 0, nil, err
		}
	}

	for i := 0; i < int(counts[0]); i++ {
		q, err := decodeQuestion(r, src)
		if err != nil {
			return 0, nil, err
		}
		msg.Questions = append(msg.Questions, q)
	}

	sections := []struct {
		dst *[]domain.Record
		n   int
	}{
		{&msg.Answers, int(counts[1])},
		{&msg.Authority, int(counts[2])},
		{&msg.Additional, int(counts[3])},
	}
	for _, sec := range sections {
		for i := 0; i < sec.n; i++ {
			rec, skipped, err := decodeRecord(r, src)
			if err != nil {
				return 0, nil, err
			}
			if skipped {
				continue
			}
			*sec.dst = append(*sec.dst, rec)
		}
	}

	return r.pos, msg, nil
}

// decodeQuestion is strict: a bad name, type or class fails the parse.
func decodeQuestion(r *reader, msg []byte) (domain.Question, error) {
	name, err := decodeName(r, msg, maxPointerHops)
	if err != nil {
		return domain.Question{}, err
	}
	tcode, err := r.readUint16()
	if err != nil {
		return domain.Question{}, err
	}
	ccode, err := r.readUint16()
	if err != nil {
		return domain.Question{}, err
	}
	rrtype := domain.RRType(tcode)
	class := domain.RRClass(ccode)
	if !rrtype.IsValid() || !class.IsValid() {
		return domain.Question{}, ErrParse
	}
	return domain.Question{Name: name, Type: rrtype, Class: class}, nil
}

// decodeRecord is tolerant of unrecognized type or class codes: the ttl
// and rdata length are read unconditionally, and when enough bytes
// remain the record body is skipped so the next record can be parsed.
// Running out of bytes while skipping still fails the whole parse.
func decodeRecord(r *reader, msg []byte) (domain.Record, bool, error) {
	name, err := decodeName(r, msg, maxPointerHops)
	if err != nil {
		return domain.Record{}, false, err
	}
	tcode, err := r.readUint16()
	if err != nil {
		return domain.Record{}, false, err
	}
	ccode, err := r.readUint16()
	if err != nil {
		return domain.Record{}, false, err
	}
	ttl, err := r.readUint32()
	if err != nil {
		return domain.Record{}, false, err
	}
	rdlen, err := r.readUint16()
	if err != nil {
		return domain.Record{}, false, err
	}

	rrtype := domain.RRType(tcode)
	class := domain.RRClass(ccode)
	if !rrtype.IsValid() || !class.IsValid() {
		if int(rdlen) > r.remaining() {
			return domain.Record{}, false, ErrParse
		}
		r.skip(int(rdlen))
		return domain.Record{}, true, nil
	}

	data, err := decodeRData(r, msg, rrtype, int(rdlen))
	if err != nil {
		return domain.Record{}, false, err
	}
	return domain.Record{
		Name:  name,
		Class: class,
		TTL:   int32(ttl),
		Data:  data,
	}, false, nil
}

// decodeRData is the wire-code-to-variant half of the RData mapping;
// the variant-to-code half is the RRType method set in the domain
// package. A new variant must be added to both.
func decodeRData(r *reader, msg []byte, t domain.RRType, rdlen int) (domain.RData, error) {
	switch t {
	case domain.RRTypeA:
		b, err := r.readBytes(4)
		if err != nil {
			return nil, err
		}
		return domain.AData{Addr: netip.AddrFrom4([4]byte(b))}, nil
	case domain.RRTypeAAAA:
		b, err := r.readBytes(16)
		if err != nil {
			return nil, err
		}
		return domain.AAAAData{Addr: netip.AddrFrom16([16]byte(b))}, nil
	case domain.RRTypeMX:
		pref, err := r.readUint16()
		if err != nil {
			return nil, err
		}
		exchange, err := decodeName(r, msg, maxPointerHops)
		if err != nil {
			return nil, err
		}
		return domain.MXData{Preference: int16(pref), Exchange: exchange}, nil
	case domain.RRTypePTR:
		name, err := decodeName(r, msg, maxPointerHops)
		if err != nil {
			return nil, err
		}
		return domain.PTRData{Name: name}, nil
	case domain.RRTypeRP:
		mbox, err := decodeName(r, msg, maxPointerHops)
		if err != nil {
			return nil, err
		}
		txt, err := decodeName(r, msg, maxPointerHops)
		if err != nil {
			return nil, err
		}
		return domain.RPData{Mailbox: mbox, TXTDomain: txt}, nil
	case domain.RRTypeTXT:
		return decodeTXT(r, rdlen)
	default:
		// ALL is valid in questions only; in a record it fails the parse.
		return nil, ErrParse
	}
}

// decodeTXT consumes character-strings until their cumulative encoded
// length, including each string's own length byte, covers the declared
// rdata length.
func decodeTXT(r *reader, rdlen int) (domain.RData, error) {
	var strs []string
	for consumed := 0; consumed < rdlen; {
		s, err := decodeCharString(r)
		if err != nil {
			return nil, err
		}
		strs = append(strs, s)
		consumed += 1 + len(s)
	}
	return domain.TXTData{Strings: strs}, nil
}

func decodeCharString(r *reader) (string, error) {
	n, err := r.readUint8()
	if err != nil {
		return "", err
	}
	b, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrParse
	}
	return string(b), nil
}

// decodeName reads length-prefixed labels until the zero label, joining
// them with dots. A length byte with both top bits set is a compression
// pointer: its 14-bit offset is resolved against the whole message with
// a fresh cursor and a decremented hop budget, and the name decoded
// there becomes the suffix. A length byte with exactly one top bit set
// is invalid.
func decodeName(r *reader, msg []byte, hops int) (string, error) {
	var labels []string
	for {
		n, err := r.readUint8()
		if err != nil {
			return "", err
		}
		if n == 0 {
			break
		}
		if n&0xC0 != 0 {
			if n&0xC0 != 0xC0 {
				return "", ErrParse
			}
			b2, err := r.readUint8()
			if err != nil {
				return "", err
			}
			if hops <= 0 {
				return "", ErrParse
			}
			offset := int(n&0x3F)<<8 | int(b2)
			if offset > len(msg) {
				return "", ErrParse
			}
			target := &reader{buf: msg, pos: offset}
			suffix, err := decodeName(target, msg, hops-1)
			if err != nil {
				return "", err
			}
			labels = append(labels, suffix)
			return strings.Join(labels, "."), nil
		}
		b, err := r.readBytes(int(n))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", ErrParse
		}
		labels = append(labels, string(b))
	}
	return strings.Join(labels, "."), nil
}
