package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionMoveNorth},
		{"k", ActionMoveNorth},
		{"j", ActionMoveSouth},
		{"h", ActionMoveWest},
		{"east", ActionMoveEast},
		{".", ActionWait},
		{"", ActionWait},
		{"e", ActionInteract},
		{"f9", ActionDump},
		{"q", ActionQuit},
		{"xyzzy", ActionNone},
	}
	for _, tt := range tests {
		if got := MapToIntent(RawInput{Code: tt.code}).Action; got != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("  North \nq"))
	if got, err := readLine(br); err != nil || got != "north" {
		t.Errorf("first line = %q, %v", got, err)
	}
	if got, err := readLine(br); err != nil || got != "q" {
		t.Errorf("unterminated last line = %q, %v", got, err)
	}
	if _, err := readLine(br); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\x1b[A", "arrow_up"},
		{"\x1bOD", "arrow_left"},
		{"\x1b[20~", "f9"},
		{"\x1b[5~", ""},
		{"\x1b", "quit"},
		{"K", "k"},
		{"\r", "enter"},
		{" ", "wait"},
		{"\x03", "quit"},
	}
	for _, tt := range tests {
		r := &Reader{buf: bufio.NewReader(strings.NewReader(tt.input))}
		b, _ := r.buf.ReadByte()
		if got := r.decodeKey(b); got != tt.want {
			t.Errorf("decodeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	codes := GetBindingsByAction()[ActionMoveNorth]
	want := []string{"arrow_up", "k", "north"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Errorf("north bindings = %v, want %v", codes, want)
	}
}
