package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseSample(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	s, ok := parseSample("0.1 -0.2 9.8", at)
	if !ok {
		t.Fatal("expected valid sample")
	}
	if s.X != 0.1 || s.Y != -0.2 || s.Z != 9.8 || !s.At.Equal(at) {
		t.Fatalf("unexpected sample: %+v", s)
	}

	for _, bad := range []string{"", "1 2", "1 2 3 4", "a b c"} {
		if _, ok := parseSample(bad, at); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
