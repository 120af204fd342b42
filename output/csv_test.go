package output

import (
	"bytes"
	"errors"
	"runtime"
	"testing"
)

func TestCSVFormatter_Format(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		want    string
	}{
		{
			name:    "empty records",
			records: nil,
			want:    "",
		},
		{
			name:    "header and rows",
			records: [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5", "6"}},
			want:    "a,b,c\n1,2,3\n4,5,6\n",
		},
		{
			name:    "blank supplement cells",
			records: [][]string{{"1", "2", "", ""}},
			want:    "1,2,,\n",
		},
		{
			name:    "cells are written as they are",
			records: [][]string{{" x", `say "hi"`, "tail "}},
			want:    " x,say \"hi\",tail \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := NewCSVFormatter(&buf)
			formatter.AlwaysUseUnixNewline(true)

			if err := formatter.Format(tt.records); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSVFormatter_Quoting(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)
	formatter.AlwaysUseUnixNewline(true)
	formatter.SetQuoting(true)

	if err := formatter.Format([][]string{{"Doe, John", `say "hi"`, " x", "plain"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "\"Doe, John\",\"say \"\"hi\"\"\",\" x\",plain\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCSVFormatter_PlatformNewline(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.Format([][]string{{"a"}, {"b"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "a\nb\n"
	if runtime.GOOS == "windows" {
		want = "a\r\nb\r\n"
	}
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCSVFormatter_Sanitize(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)
	formatter.AlwaysUseUnixNewline(true)
	formatter.SetSanitize(true)

	if err := formatter.Format([][]string{{"=SUM(A1)", "-5", "plain", "@it's"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "'=SUM(A1),'-5,plain,'@it''s\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCSVFormatter_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	formatter := NewCSVFormatter(&first)
	formatter.AlwaysUseUnixNewline(true)
	formatter.SetOutput(&second)

	if err := formatter.Format([][]string{{"x"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if first.Len() != 0 {
		t.Errorf("old writer received %q", first.String())
	}
	if second.String() != "x\n" {
		t.Errorf("new writer received %q, want %q", second.String(), "x\n")
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestCSVFormatter_WriteError(t *testing.T) {
	formatter := NewCSVFormatter(failingWriter{})
	if err := formatter.Format([][]string{{"a"}}); !errors.Is(err, errWrite) {
		t.Errorf("Format() error = %v, want %v", err, errWrite)
	}
}
