package limits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyCString(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		input   string
		want    string
		wantN   int
		wantErr error
	}{
		{name: "fits", size: 16, input: "Alice", want: "Alice", wantN: 5},
		{name: "exact fit", size: 6, input: "Alice", want: "Alice", wantN: 5},
		{name: "empty string", size: 1, input: "", want: "", wantN: 0},
		{name: "truncated", size: 4, input: "Alice", want: "Ali", wantN: 3, wantErr: ErrBufferTooSmall},
		{name: "only terminator fits", size: 1, input: "Alice", want: "", wantN: 0, wantErr: ErrBufferTooSmall},
		{name: "no room at all", size: 0, input: "Alice", wantN: 0, wantErr: ErrEmptyBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			for i := range buf {
				buf[i] = 0xff
			}

			n, err := CopyCString(buf, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantN, n)

			if tt.size > 0 {
				require.Equal(t, byte(0), buf[n], "result must be terminated")
				assert.Equal(t, tt.want, string(buf[:n]))
			}
		})
	}
}

func TestCopyCStringReportsNeededSize(t *testing.T) {
	buf := make([]byte, 8)
	_, err := CopyCString(buf, strings.Repeat("x", 20))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need 21 bytes, have 8")
}

func TestLimitsFitLongestValues(t *testing.T) {
	assert.Equal(t, MaxPersonaNameLength, RequiredSize(strings.Repeat("n", MaxPersonaNameLength-1)))

	buf := make([]byte, MaxFileNameLength)
	_, err := CopyCString(buf, strings.Repeat("f", MaxFileNameLength-1))
	assert.NoError(t, err)
}
