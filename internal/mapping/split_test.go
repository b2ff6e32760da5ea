package mapping

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		size      int
		multiline bool
		want      []string
	}{
		{
			name:    "lines",
			content: "a\nb\nc\nd\ne\n",
			size:    2,
			want:    []string{"a\nb\n", "c\nd\n", "e\n"},
		},
		{
			name:      "blocks stay whole",
			content:   "one\ntwo\n=====\nthree\n=====\nfour\nfive\nsix\n=====\n",
			size:      2,
			multiline: true,
			want:      []string{"one\ntwo\n=====\nthree\n=====\n", "four\nfive\nsix\n=====\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			in := filepath.Join(dir, "single.txt")
			if err := os.WriteFile(in, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			// when
			parts, err := Split(in, filepath.Join(dir, "parts"), tt.size, tt.multiline)

			// then
			if err != nil {
				t.Fatalf("Split: %v", err)
			}
			if len(parts) != len(tt.want) {
				t.Fatalf("got %d parts, want %d", len(parts), len(tt.want))
			}
			for i, p := range parts {
				if filepath.Base(p) != "single_part"+string(rune('1'+i))+".txt" {
					t.Errorf("part name = %s", p)
				}
				data, _ := os.ReadFile(p)
				if string(data) != tt.want[i] {
					t.Errorf("part %d = %q, want %q", i+1, data, tt.want[i])
				}
			}
		})
	}
}
