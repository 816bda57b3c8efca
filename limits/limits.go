package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxPersonaNameLength is the buffer size that always fits a persona
	// name plus terminator.
	MaxPersonaNameLength = 128

	// MaxFileNameLength is the buffer size that always fits a remote storage
	// file name plus terminator.
	MaxFileNameLength = 260
)

var (
	// ErrBufferTooSmall indicates the destination cannot hold the string and
	// its terminator.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrEmptyBuffer indicates a zero length destination.
	ErrEmptyBuffer = errors.New("empty buffer")
)

// CopyCString copies s into dst followed by a NUL byte and returns the number
// of bytes of s written. When dst is too short the longest prefix that fits
// is written, still terminated, and the error wraps ErrBufferTooSmall with
// the size that would have been needed.
func CopyCString(dst []byte, s string) (int, error) {
	if len(dst) == 0 {
		return 0, ErrEmptyBuffer
	}

	need := len(s) + 1
	if need > len(dst) {
		n := copy(dst[:len(dst)-1], s)
		dst[n] = 0
		return n, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, len(dst))
	}

	n := copy(dst, s)
	dst[n] = 0
	return n, nil
}

// RequiredSize returns the buffer size needed to hold s as a C string.
func RequiredSize(s string) int {
	return len(s) + 1
}
