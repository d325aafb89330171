package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateFolder(t *testing.T) {
	tests := []struct {
		name        string
		folder      string
		allowHidden bool
		wantErr     bool
	}{
		{"plain name", "myeditor", false, false},
		{"name with spaces", "My Editor", false, false},
		{"empty", "", false, true},
		{"forward slash", "a/b", false, true},
		{"backslash", `a\b`, false, true},
		{"parent escape", "..", false, true},
		{"current dir", ".", false, true},
		{"hidden rejected by default", ".myeditor", false, true},
		{"hidden allowed when opted in", ".myeditor", true, false},
		{"dot-dot still rejected when hidden allowed", "..", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFolder(tt.folder, tt.allowHidden)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFolderName)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDataDirWithBase(t *testing.T) {
	base := t.TempDir()
	dir, err := DataDir(base, "myeditor")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "myeditor"), dir)
}

func TestDataDirPlatformDefault(t *testing.T) {
	dir, err := DataDir("", "myeditor")
	require.NoError(t, err)
	require.Equal(t, "myeditor", filepath.Base(dir))
}
