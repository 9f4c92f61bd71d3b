package report

import (
	"testing"

	"github.com/memtree/memtree/model"
)

func TestFormatMemory(t *testing.T) {
	const mb = 1024 * 1024
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0B"},
		{1, "0.0MB"},
		{512 * 1024, "0.5MB"},
		{mb, "1.0MB"},
		{10*mb + mb/2, "10.5MB"},
		{1<<30 - 1, "1024.0MB"}, // still below the GB line
		{1 << 30, "1.0GB"},
		{1536 * mb, "1.5GB"},
		{3 * 1024 * mb, "3.0GB"},
	}
	for _, tt := range tests {
		if got := FormatMemory(tt.bytes); got != tt.want {
			t.Errorf("FormatMemory(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"padded", "pg", 10, "pg        "},
		{"exact width", "abcdefghij", 10, "abcdefghij"},
		{"truncated", "abcdefghijkl", 10, "abcdefg..."},
		{"tiny width", "abcdefghijkl", 3, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayName(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("displayName(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if tt.width > 3 && len(got) != tt.width {
				t.Errorf("displayName(%q, %d) has len %d, want %d", tt.in, tt.width, len(got), tt.width)
			}
		})
	}
}

func TestColumnWidths(t *testing.T) {
	tree := &model.Tree{
		Root: 5,
		Nodes: map[model.PID]*model.ProcessNode{
			5:    {ProcessRecord: model.ProcessRecord{PID: 5, Name: "a"}, Children: []model.PID{4321}},
			4321: {ProcessRecord: model.ProcessRecord{PID: 4321, Name: "b"}},
		},
	}

	pidW, nameW := columnWidths(tree, 40)
	if pidW != 4 {
		t.Errorf("pid width = %d, want 4", pidW)
	}
	if nameW != 40 {
		t.Errorf("name width = %d, want 40", nameW)
	}
}
