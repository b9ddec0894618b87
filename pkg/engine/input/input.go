// Package input reads player commands from the terminal and maps them to actions.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Reader reads commands either key by key from a raw-mode terminal or line by
// line from any other stream.
type Reader struct {
	in  *os.File
	buf *bufio.Reader
	raw bool
}

// NewReader returns a Reader for f. Raw single-key reads are used when f is a terminal.
func NewReader(f *os.File) *Reader {
	return &Reader{
		in:  f,
		buf: bufio.NewReader(f),
		raw: term.IsTerminal(int(f.Fd())),
	}
}

// Next blocks for the next command and returns it as an Intent.
// io.EOF is returned when the input is exhausted.
func (r *Reader) Next() (Intent, error) {
	var code string
	var err error
	if r.raw {
		code, err = r.readKey()
	} else {
		code, err = readLine(r.buf)
	}
	if err != nil {
		return Intent{}, err
	}
	return MapToIntent(RawInput{Device: r.device(), Code: code, Timestamp: time.Now()}), nil
}

func (r *Reader) device() Device {
	if r.raw {
		return DeviceKeyboard
	}
	return DeviceTerminal
}

// readLine reads one line and normalises it to a lower-case code.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// readKey puts the terminal into raw mode for a single key press.
func (r *Reader) readKey() (string, error) {
	fd := int(r.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("set terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	b, err := r.buf.ReadByte()
	if err != nil {
		return "", err
	}
	return r.decodeKey(b), nil
}

// decodeKey turns the first byte of a key press, plus any escape sequence that
// follows it, into a code.
func (r *Reader) decodeKey(b byte) string {
	switch b {
	case 3, 4: // Ctrl+C, Ctrl+D
		return "quit"
	case '\r', '\n':
		return "enter"
	case ' ':
		return "wait"
	case 0x1b:
		return r.decodeEscape()
	}
	if b >= 32 && b < 127 {
		return strings.ToLower(string(b))
	}
	return ""
}

// decodeEscape reads CSI (ESC [) and SS3 (ESC O) sequences for arrows and F9.
func (r *Reader) decodeEscape() string {
	if r.buf.Buffered() == 0 {
		return "quit"
	}
	b2, err := r.buf.ReadByte()
	if err != nil || (b2 != '[' && b2 != 'O') {
		return ""
	}
	b3, err := r.buf.ReadByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	// ESC [ 2 0 ~ is F9; discard other numbered sequences.
	seq := []byte{b3}
	for len(seq) < 4 {
		c, err := r.buf.ReadByte()
		if err != nil || c == '~' {
			break
		}
		seq = append(seq, c)
	}
	if string(seq) == "20" {
		return "f9"
	}
	return ""
}
