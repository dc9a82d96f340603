package pixmap

import (
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// byteReader is what the tokenizer and the payload readers need. Decode wraps
// plain readers in a bufio.Reader; readers that already satisfy it are used
// as-is so the caller's cursor ends right after the payload.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// tokenizer splits the header and the P3 payload into whitespace-delimited
// tokens, skipping '#' comments.
type tokenizer struct {
	r   byteReader
	buf []byte
}

func newTokenizer(r byteReader) *tokenizer {
	return &tokenizer{r: r, buf: make([]byte, 0, 16)}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// next returns the next token. The returned slice is only valid until the
// following call. io.EOF means the stream ended before any token byte was
// read; a token cut off by end-of-stream is returned as complete. Other read
// errors are wrapped in errkind.ErrIOFailure.
func (t *tokenizer) next() ([]byte, error) {
	t.buf = t.buf[:0]

	for {
		c, err := t.r.ReadByte()
		if err != nil {
			return nil, t.readErr(err)
		}
		if isSpace(c) {
			continue
		}
		if c == '#' {
			if err := t.skipComment(); err != nil {
				return nil, err
			}
			continue
		}
		t.buf = append(t.buf, c)
		break
	}

	for {
		c, err := t.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return t.buf, nil
		}
		if err != nil {
			return nil, t.readErr(err)
		}
		if isSpace(c) {
			return t.buf, nil
		}
		t.buf = append(t.buf, c)
	}
}

func (t *tokenizer) skipComment() error {
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			return t.readErr(err)
		}
		if c == '\n' || c == '\r' {
			return nil
		}
	}
}

func (t *tokenizer) readErr(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
}

// parseUint parses a non-empty run of ASCII digits. ok is false for any other
// byte or for values beyond limit.
func parseUint(tok []byte, limit int) (v int, ok bool) {
	if len(tok) == 0 {
		return 0, false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
		if v > limit {
			return 0, false
		}
	}
	return v, true
}
