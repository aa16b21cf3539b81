package output_test

import (
	"bytes"
	"testing"

	"tada/internal/output"
	"tada/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{
			name: "open",
			task: service.Task{ID: 1, Title: "Buy milk"},
			want: "[ ]    1  Buy milk\n",
		},
		{
			name: "completed",
			task: service.Task{ID: 42, Title: "Ship it", Completed: true},
			want: "[x]   42  Ship it\n",
		},
		{
			name: "with description",
			task: service.Task{ID: 2, Title: "Buy milk", Description: "2 liters"},
			want: "[ ]    2  Buy milk\n          2 liters\n",
		},
		{
			name: "untitled",
			task: service.Task{ID: 3, Title: "   "},
			want: "[ ]    3  (untitled)\n",
		},
		{
			name: "multiline title flattened",
			task: service.Task{ID: 4, Title: "Buy\nmilk"},
			want: "[ ]    4  Buy milk\n",
		},
		{
			name: "wide id",
			task: service.Task{ID: 12345, Title: "Buy milk"},
			want: "[ ] 12345  Buy milk\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.task)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAttachment(t *testing.T) {
	var buf bytes.Buffer
	output.FormatAttachment(&buf, "https://files.example.com/tasks/1/a.png")
	if got := buf.String(); got != "  https://files.example.com/tasks/1/a.png\n" {
		t.Errorf("got %q", got)
	}
}
