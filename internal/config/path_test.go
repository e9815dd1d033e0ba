package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SUBTRACK_TEST_DIR", "/tmp/subtrack")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain path untouched", input: "/var/lib/subtrack.db", want: "/var/lib/subtrack.db"},
		{name: "tilde prefix", input: "~/data/subtrack.db", want: filepath.Join(home, "data", "subtrack.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$SUBTRACK_TEST_DIR/subtrack.db", want: "/tmp/subtrack/subtrack.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
