package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritableDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tests := []struct {
		name    string
		dir     string
		wantErr string
	}{
		{name: "writable", dir: dir},
		{name: "missing", dir: filepath.Join(dir, "missing"), wantErr: "no such file"},
		{name: "file", dir: file, wantErr: "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WritableDir(tt.dir)
			if tt.wantErr == "" {
				require.NoError(t, err)

				entries, readErr := os.ReadDir(tt.dir)
				require.NoError(t, readErr)
				assert.Len(t, entries, 1, "probe removed")

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
