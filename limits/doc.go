// Package limits provides the buffer sizes and copy helpers used where
// strings cross into caller-owned C memory.
//
// # Buffer Sizes
//
//   - MaxPersonaNameLength (128 bytes): the longest display name the
//     platform reports, including the terminating NUL.
//
//   - MaxFileNameLength (260 bytes): the longest remote storage file name,
//     including the terminating NUL.
//
// # Copying Strings
//
// CopyCString writes a NUL terminated copy of a Go string into a byte slice
// that usually aliases a C buffer:
//
//	n, err := limits.CopyCString(buf, name)
//	if errors.Is(err, limits.ErrBufferTooSmall) {
//	    // buf holds a truncated, still terminated, prefix of name
//	}
//
// The returned count never includes the terminator.
package limits
