package codec

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"

	"github.com/kerren/dnswire/internal/dns/domain"
)

// header builds a 12-byte header with the given flag bytes and counts.
func header(id uint16, flags1, flags2 byte, qd, an, ns, ar uint16) []byte {
	return []byte{
		byte(id >> 8), byte(id),
		flags1, flags2,
		byte(qd >> 8), byte(qd),
		byte(an >> 8), byte(an),
		byte(ns >> 8), byte(ns),
		byte(ar >> 8), byte(ar),
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	m := domain.NewQuery(0xABCD)
	m.IsQuery = false
	m.Authoritative = true
	m.RecursionAvailable = true
	m.RCode = domain.RCodeNameError
	m.Questions = []domain.Question{
		{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN},
		{Name: "example.org", Type: domain.RRTypeTXT, Class: domain.RRClassALL},
	}
	m.Answers = []domain.Record{
		{Name: "example.com", Class: domain.RRClassIN, TTL: 300,
			Data: domain.AData{Addr: netip.MustParseAddr("93.184.216.34")}},
		{Name: "example.com", Class: domain.RRClassIN, TTL: -1,
			Data: domain.AAAAData{Addr: netip.MustParseAddr("2606:2800:220:1:248:1893:25c8:1946")}},
		{Name: "example.com", Class: domain.RRClassIN, TTL: 60,
			Data: domain.MXData{Preference: -5, Exchange: "mail.example.com"}},
		{Name: "example.org", Class: domain.RRClassIN, TTL: 60,
			Data: domain.TXTData{Strings: []string{"hello", "world"}}},
	}
	m.Authority = []domain.Record{
		{Name: "4.3.2.1.in-addr.arpa", Class: domain.RRClassIN, TTL: 3600,
			Data: domain.PTRData{Name: "example.net"}},
	}
	m.Additional = []domain.Record{
		{Name: "example.com", Class: domain.RRClassIN, TTL: 3600,
			Data: domain.RPData{Mailbox: "admin.example.com", TXTDomain: "info.example.com"}},
	}

	var buf [MaxMessageSize]byte
	written, err := Encode(m, buf[:])
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	consumed, decoded, err := Decode(buf[:written])
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if consumed != written {
		t.Errorf("consumed %d bytes, formatted %d", consumed, written)
	}
	if !reflect.DeepEqual(m, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, m)
	}
}

func TestDecode_CompressedAnswer(t *testing.T) {
	// Response with one question and one A answer whose name is a
	// pointer to the question name at offset 12.
	buf := header(12345, 0x81, 0x80, 1, 1, 0, 0)
	buf = append(buf, 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01) // question type/class
	buf = append(buf, 0xC0, 12)               // answer name: pointer to offset 12
	buf = append(buf, 0x00, 0x01, 0x00, 0x01) // type A, class IN
	buf = append(buf, 0x00, 0x00, 0x01, 0x2C) // ttl 300
	buf = append(buf, 0x00, 0x04)             // rdlength
	buf = append(buf, 93, 184, 216, 34)

	consumed, msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if consumed != len(buf) {
		t.Errorf("consumed %d, want %d", consumed, len(buf))
	}
	if len(msg.Answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(msg.Answers))
	}
	ans := msg.Answers[0]
	if ans.Name != msg.Questions[0].Name || ans.Name != "example.com" {
		t.Errorf("answer name = %q, want %q", ans.Name, "example.com")
	}
	if ans.TTL != 300 {
		t.Errorf("ttl = %d, want 300", ans.TTL)
	}
	want := domain.AData{Addr: netip.MustParseAddr("93.184.216.34")}
	if ans.Data != want {
		t.Errorf("data = %v, want %v", ans.Data, want)
	}
}

func TestDecode_PointerSuffix(t *testing.T) {
	// The answer name has its own leading label followed by a pointer
	// into the question name.
	buf := header(1, 0x81, 0x00, 1, 1, 0, 0)
	buf = append(buf, 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 3, 'w', 'w', 'w', 0xC0, 12) // www + pointer
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x00, 0x3C)
	buf = append(buf, 0x00, 0x04, 192, 0, 2, 1)

	_, msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got := msg.Answers[0].Name; got != "www.example.com" {
		t.Errorf("answer name = %q, want %q", got, "www.example.com")
	}
}

func TestDecode_PointerToSelf(t *testing.T) {
	buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
	buf = append(buf, 0xC0, 12)               // question name points at itself
	buf = append(buf, 0x00, 0x01, 0x00, 0x01) // never reached

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_PointerCycle(t *testing.T) {
	buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
	buf = append(buf, 0xC0, 14) // offset 12: points to offset 14
	buf = append(buf, 0xC0, 12) // offset 14: points back to offset 12
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_InvalidLabelPrefix(t *testing.T) {
	// Top bits 10 and 01 are reserved; both must fail the name decode.
	for _, prefix := range []byte{0x80, 0x40} {
		buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
		buf = append(buf, prefix, 0x00)
		buf = append(buf, 0x00, 0x01, 0x00, 0x01)

		if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
			t.Errorf("prefix %#02x: err = %v, want ErrParse", prefix, err)
		}
	}
}

func TestDecode_UnknownRecordTypeSkipped(t *testing.T) {
	buf := header(1, 0x81, 0x00, 0, 2, 0, 0)
	// record 1: unknown type 99, declared rdata present
	buf = append(buf, 0)                      // root name
	buf = append(buf, 0x00, 99, 0x00, 0x01)   // type 99, class IN
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // ttl
	buf = append(buf, 0x00, 0x03, 0xAA, 0xBB, 0xCC)
	// record 2: a normal A record
	buf = append(buf, 3, 'f', 'o', 'o', 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x00, 0x3C)
	buf = append(buf, 0x00, 0x04, 1, 2, 3, 4)

	consumed, msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if consumed != len(buf) {
		t.Errorf("consumed %d, want %d", consumed, len(buf))
	}
	if len(msg.Answers) != 1 {
		t.Fatalf("answers = %d, want 1 (unknown type skipped)", len(msg.Answers))
	}
	if msg.Answers[0].Name != "foo" {
		t.Errorf("answer name = %q, want %q", msg.Answers[0].Name, "foo")
	}
}

func TestDecode_UnknownRecordTypeTruncated(t *testing.T) {
	buf := header(1, 0x81, 0x00, 0, 1, 0, 0)
	buf = append(buf, 0)
	buf = append(buf, 0x00, 99, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, 0x00, 0x10, 0xAA) // claims 16 bytes, has 1

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_QuestionUnknownTypeIsStrict(t *testing.T) {
	buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
	buf = append(buf, 3, 'f', 'o', 'o', 0)
	buf = append(buf, 0x00, 99, 0x00, 0x01) // unknown question type

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_RecordTypeALLAborts(t *testing.T) {
	buf := header(1, 0x81, 0x00, 0, 1, 0, 0)
	buf = append(buf, 0)
	buf = append(buf, 0x00, 0xFF, 0x00, 0x01) // ALL is query-only
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, 0x00, 0x00)

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_TXTBoundedByRDataLength(t *testing.T) {
	buf := header(1, 0x81, 0x00, 0, 2, 0, 0)
	// TXT record with rdlength 8: "ab" (3 encoded) + "cdef" (5 encoded)
	buf = append(buf, 1, 't', 0)
	buf = append(buf, 0x00, 0x10, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, 0x00, 0x08)
	buf = append(buf, 2, 'a', 'b', 4, 'c', 'd', 'e', 'f')
	// followed by an A record that must still parse
	buf = append(buf, 1, 'a', 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, 0x00, 0x04, 192, 0, 2, 7)

	_, msg, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(msg.Answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(msg.Answers))
	}
	want := domain.TXTData{Strings: []string{"ab", "cdef"}}
	if !reflect.DeepEqual(msg.Answers[0].Data, want) {
		t.Errorf("txt data = %+v, want %+v", msg.Answers[0].Data, want)
	}
	if msg.Answers[1].Name != "a" {
		t.Errorf("second answer name = %q, want %q", msg.Answers[1].Name, "a")
	}
}

func TestDecode_HeaderValidation(t *testing.T) {
	cases := []struct {
		name   string
		flags1 byte
		flags2 byte
	}{
		{"bad opcode", 0x01 | 7<<3, 0x00},
		{"bad rcode", 0x81, 0x0E},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := header(1, tc.flags1, tc.flags2, 0, 0, 0, 0)
			if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	full := header(1, 0x01, 0x00, 1, 0, 0, 0)
	full = append(full, 3, 'f', 'o', 'o', 0, 0x00, 0x01, 0x00, 0x01)

	for n := 0; n < len(full); n++ {
		if _, _, err := Decode(full[:n]); !errors.Is(err, ErrParse) {
			t.Errorf("Decode of %d-byte prefix: err = %v, want ErrParse", n, err)
		}
	}
}

func TestDecode_PointerOffsetOutOfRange(t *testing.T) {
	buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
	buf = append(buf, 0xC3, 0xFF) // offset 1023, far past the message
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDecode_InvalidUTF8Label(t *testing.T) {
	buf := header(1, 0x01, 0x00, 1, 0, 0, 0)
	buf = append(buf, 2, 0xFF, 0xFE, 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)

	if _, _, err := Decode(buf); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}
