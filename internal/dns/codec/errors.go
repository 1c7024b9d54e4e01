package codec

import (
	"errors"
	"fmt"
)

// ErrParse is the single error returned for any malformed input seen by
// Decode. All causes collapse into one kind on purpose: the public
// surface stays minimal and callers cannot come to depend on the shape
// of attacker-controlled garbage.
var ErrParse = errors.New("dns: malformed message")

// ErrMessageTooLarge is returned by Encode when the exact encoded size
// of the message would exceed MaxMessageSize.
var ErrMessageTooLarge = errors.New("dns: message exceeds maximum size")

// BufferTooSmallError is returned by Encode when the destination buffer
// cannot hold the message. Required carries the exact byte count needed.
type BufferTooSmallError struct {
	Required int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("dns: buffer too small: %d bytes required", e.Required)
}

// LabelTooLongError is returned by Encode when a domain-name label
// exceeds 63 bytes. Length carries the offending label's byte length.
type LabelTooLongError struct {
	Length int
}

func (e *LabelTooLongError) Error() string {
	return fmt.Sprintf("dns: label too long: %d bytes", e.Length)
}

// StringTooLongError is returned by Encode when a TXT character-string
// exceeds 255 bytes. Length carries the offending string's byte length.
type StringTooLongError struct {
	Length int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("dns: character-string too long: %d bytes", e.Length)
}
