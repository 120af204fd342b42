package output

import (
	"bytes"
	"testing"
)

func TestJSONFormatter_Format(t *testing.T) {
	tests := []struct {
		name    string
		header  bool
		records [][]string
		want    string
	}{
		{
			name:    "empty records",
			records: nil,
			want:    "",
		},
		{
			name:    "arrays without header",
			records: [][]string{{"1", "alice"}, {"2", "bob"}},
			want:    "[\"1\",\"alice\"]\n[\"2\",\"bob\"]\n",
		},
		{
			name:    "objects keep column order",
			header:  true,
			records: [][]string{{"name", "id"}, {"alice", "1"}},
			want:    "{\"name\":\"alice\",\"id\":\"1\"}\n",
		},
		{
			name:    "header only",
			header:  true,
			records: [][]string{{"a", "b"}},
			want:    "",
		},
		{
			name:    "escaping",
			header:  true,
			records: [][]string{{"quote\"d"}, {"line\nbreak"}},
			want:    "{\"quote\\\"d\":\"line\\nbreak\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := NewJSONFormatter(&buf)
			formatter.SetHeaderRow(tt.header)

			if err := formatter.Format(tt.records); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
