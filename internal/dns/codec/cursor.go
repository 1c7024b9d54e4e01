package codec

import "encoding/binary"

// reader is a forward-moving cursor over a borrowed byte slice. Every
// read is bounds-checked and fails with ErrParse on underflow, so the
// decoding code above it never indexes the buffer directly.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) skip(n int) {
	r.pos += n
}

func (r *reader) readUint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrParse
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) readUint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrParse
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) readUint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrParse
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// readBytes returns a view of the next n bytes. The view aliases the
// input buffer; callers copy before retaining.
func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrParse
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// writer is the formatting counterpart of reader. Encode pre-validates
// the exact message size against the destination, so writes never range
// check; an overflow here would be a bug in the length calculator.
type writer struct {
	buf []byte
	pos int
}

func (w *writer) putUint8(v uint8) {
	w.buf[w.pos] = v
	w.pos++
}

func (w *writer) putUint16(v uint16) {
	binary.BigEndian.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

func (w *writer) putUint32(v uint32) {
	binary.BigEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

func (w *writer) putBytes(b []byte) {
	copy(w.buf[w.pos:], b)
	w.pos += len(b)
}

func (w *writer) putString(s string) {
	copy(w.buf[w.pos:], s)
	w.pos += len(s)
}
