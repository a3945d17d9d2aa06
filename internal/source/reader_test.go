package source

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestCleanReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
		replaced int
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: "??abc",
			replaced: 2,
		},
		{
			name:     "valid multibyte",
			input:    []byte("grüße,日本"),
			expected: "grüße,日本",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
			replaced: 1,
		},
		{
			name:     "truncated sequence at EOF",
			input:    []byte{'o', 'k', 0xE6, 0x97},
			expected: "ok??",
			replaced: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewCleanReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
			if reader.Replaced != tt.replaced {
				t.Errorf("Replaced = %d, want %d", reader.Replaced, tt.replaced)
			}
			if reader.BytesRead != int64(len(tt.input)) {
				t.Errorf("BytesRead = %d, want %d", reader.BytesRead, len(tt.input))
			}
		})
	}
}

func TestCleanReader_SmallBuffers(t *testing.T) {
	input := strings.Repeat("é,a\n", 50)
	reader := NewCleanReader(strings.NewReader(input))

	var out bytes.Buffer
	buf := make([]byte, 5)
	for {
		n, err := reader.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}

	if out.String() != input {
		t.Errorf("round trip through 5-byte reads changed the data")
	}
}
