package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{"cmd", "-d", "postgres", "-s", "postgres://db", "-a", ":9090", "-l", "30", "-k", "secret", "-v", "debug"},
			expected: &Config{StoreDriver: "postgres", StoreDSN: "postgres://db", HTTPAddr: ":9090", MessagesPersistLimit: 30, Passphrase: "secret", LogLevel: "debug"}},
		{name: "prompt passphrase", args: []string{"cmd", "-k", "-"},
			expected: &Config{Passphrase: "-"}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "x.yaml", "-x", "1", "-d", "file"},
			expected: &Config{StoreDriver: "file"}},
		{name: "incorrect limit", args: []string{"cmd", "-l", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			err := parseFlags(config)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
