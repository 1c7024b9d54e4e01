package domain

// Record represents a DNS resource record as carried on the wire.
//
// TTL is signed per RFC 1035; a negative value is a boundary case that
// the codec carries through rather than rejects. The on-wire type code
// is never stored: it is implied by the concrete RData variant held in
// Data, so the two can not disagree.
type Record struct {
	Name  string
	Class RRClass
	TTL   int32
	Data  RData
}
