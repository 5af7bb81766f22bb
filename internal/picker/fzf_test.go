package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFzfArgs(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no initial query",
			query: "",
			want:  []string{"--multi", "--prompt", "log settings> "},
		},
		{
			name:  "initial query appended",
			query: "tsch",
			want:  []string{"--multi", "--prompt", "log settings> ", "--query", "tsch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFzfArgs(tt.query))
		})
	}
}

func TestIsFzfCancel(t *testing.T) {
	assert.True(t, isFzfCancel(1), "exit 1 (no match) is a cancellation")
	assert.True(t, isFzfCancel(130), "exit 130 (user abort) is a cancellation")
	assert.False(t, isFzfCancel(2), "exit 2 is an fzf error")
	assert.False(t, isFzfCancel(0))
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "", joinLines(nil))
	assert.Equal(t, "a\n", joinLines([]string{"a"}))
	assert.Equal(t, "app.tx\napp.rx\n", joinLines([]string{"app.tx", "app.rx"}))
}

func TestParseSelections(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "empty output means empty selection",
			output: "",
			want:   nil,
		},
		{
			name:   "single line",
			output: "tsch.synced\n",
			want:   []string{"tsch.synced"},
		},
		{
			name:   "multiple lines preserve fzf order",
			output: "app.rx\napp.tx\n",
			want:   []string{"app.rx", "app.tx"},
		},
		{
			name:   "missing trailing newline tolerated",
			output: "rpl.churn",
			want:   []string{"rpl.churn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSelections(tt.output))
		})
	}
}

func TestFzfPickerName(t *testing.T) {
	p := NewFzfPicker("fzf")
	assert.Equal(t, "fzf", p.Name())
}
