package domain

// Message represents one DNS message per RFC 1035 ยง4.1: a 12-byte header
// followed by the question, answer, authority and additional sections.
//
// The four on-wire section counts are never stored here; they are derived
// from the live slice lengths at encode time.
type Message struct {
	// ID is the transaction identifier, treated as opaque bits.
	ID uint16

	// IsQuery is true for queries and false for responses (QR bit inverted).
	IsQuery bool

	// Kind is the query kind (opcode).
	Kind OpCode

	// Authoritative is set when the responding server is an authority
	// for the domain name in question.
	Authoritative bool

	// Truncated is set when the message was cut short by the transport.
	Truncated bool

	// RecursionDesired asks the server to pursue the query recursively.
	RecursionDesired bool

	// RecursionAvailable signals recursive query support in the server.
	RecursionAvailable bool

	// RCode is the response code.
	RCode RCode

	// Questions holds the question section.
	Questions []Question

	// Answers holds the answer section.
	Answers []Record

	// Authority holds the authority section.
	Authority []Record

	// Additional holds the additional section.
	Additional []Record
}

// NewQuery returns a Message with all header values preset for a
// standard recursive query. The caller appends Questions afterwards.
func NewQuery(id uint16) *Message {
	return &Message{
		ID:               id,
		IsQuery:          true,
		Kind:             OpCodeStandard,
		RecursionDesired: true,
		RCode:            RCodeOK,
	}
}
