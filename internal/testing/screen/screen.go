// Package screen replays terminal output into a virtual screen so tests can
// assert on what a user would see after clears and cursor moves.
package screen

import (
	"regexp"
	"strings"
	"sync"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Screen is an unbounded virtual terminal. It implements io.Writer and is
// safe for concurrent use.
type Screen struct {
	mu      sync.Mutex
	lines   [][]rune
	cursorX int
	cursorY int
	writes  int
	pending []rune
}

func New() *Screen {
	return &Screen{}
}

// Parse replays output onto a fresh screen.
func Parse(output string) *Screen {
	s := New()
	_, _ = s.Write([]byte(output))
	return s
}

func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runes := append(s.pending, []rune(string(p))...)
	s.pending = nil
	s.writes++

	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == '\x1b':
			next, ok := s.escape(runes, i)
			if !ok {
				// incomplete sequence, wait for the next write
				s.pending = append([]rune{}, runes[i:]...)
				return len(p), nil
			}
			i = next
		case runes[i] == '\r':
			s.cursorX = 0
			i++
		case runes[i] == '\n':
			s.cursorY++
			s.cursorX = 0
			i++
		default:
			s.put(runes[i])
			i++
		}
	}
	return len(p), nil
}

// escape handles one CSI sequence starting at start and returns the index
// after it.
func (s *Screen) escape(runes []rune, start int) (int, bool) {
	if start+1 >= len(runes) {
		return start, false
	}
	if runes[start+1] != '[' {
		return start + 2, true
	}

	var params []int
	current := 0
	for i := start + 2; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		case r == '?':
		default:
			params = append(params, current)
			s.command(r, params)
			return i + 1, true
		}
	}
	return start, false
}

func (s *Screen) command(cmd rune, params []int) {
	param := func(i, def int) int {
		if i < len(params) && params[i] > 0 {
			return params[i]
		}
		return def
	}

	switch cmd {
	case 'H', 'f':
		s.cursorY = param(0, 1) - 1
		s.cursorX = param(1, 1) - 1
	case 'J':
		if len(params) > 0 && params[0] == 2 {
			s.lines = nil
			return
		}
		s.row(s.cursorY)
		s.lines[s.cursorY] = s.lines[s.cursorY][:min(s.cursorX, len(s.lines[s.cursorY]))]
		s.lines = s.lines[:s.cursorY+1]
	case 'K':
		s.row(s.cursorY)
		s.lines[s.cursorY] = s.lines[s.cursorY][:min(s.cursorX, len(s.lines[s.cursorY]))]
	}
	// colors and cursor visibility do not change the text
}

func (s *Screen) row(y int) {
	for len(s.lines) <= y {
		s.lines = append(s.lines, nil)
	}
}

func (s *Screen) put(ch rune) {
	s.row(s.cursorY)
	line := s.lines[s.cursorY]
	for len(line) <= s.cursorX {
		line = append(line, ' ')
	}
	line[s.cursorX] = ch
	s.lines[s.cursorY] = line
	s.cursorX++
}

// Render returns the visible text with trailing blanks trimmed.
func (s *Screen) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.lines))
	for i, line := range s.lines {
		out[i] = strings.TrimRight(string(line), " ")
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// Line returns one screen line.
func (s *Screen) Line(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 || n >= len(s.lines) {
		return ""
	}
	return strings.TrimRight(string(s.lines[n]), " ")
}

// ContainsText checks if the screen contains specific text
func (s *Screen) ContainsText(text string) bool {
	return strings.Contains(s.Render(), text)
}

// Writes counts Write calls, for waiting on output in tests.
func (s *Screen) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
