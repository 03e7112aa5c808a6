package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "OFF DUTY ###", StripANSI("OFF DUTY \x1b[32m###\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("\x1b[?25lplain\x1b[?25h"))
}

func TestParse_ClearAndHome(t *testing.T) {
	s := Parse("first render\nline two\n\x1b[2J\x1b[Hsecond\n")
	assert.Equal(t, "second", s.Render())
	assert.False(t, s.ContainsText("first"))
}

func TestParse_CursorAndOverwrite(t *testing.T) {
	s := Parse("hello world\x1b[1;7HthereX\x1b[K")
	assert.Equal(t, "hello thereX", s.Line(0))

	s = Parse("abc\rZ")
	assert.Equal(t, "Zbc", s.Line(0))
}

func TestWrite_SplitEscape(t *testing.T) {
	s := New()
	_, _ = s.Write([]byte("text\x1b["))
	_, _ = s.Write([]byte("2J\x1b[Hnew"))
	assert.Equal(t, "new", s.Render())
	assert.Equal(t, 2, s.Writes())
}
