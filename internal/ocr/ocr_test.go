package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "normal text", in: "TOTAL: 100"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "  \n\t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOCR)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestFileClientReadsSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipt.txt"), []byte("SHOPRITE\nTOTAL: 100"), 0600))

	text, err := FileClient{}.ExtractText(context.Background(), filepath.Join(dir, "receipt.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "SHOPRITE\nTOTAL: 100", text)
}

func TestFileClientReadsTxtDirectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.txt")
	require.NoError(t, os.WriteFile(path, []byte("TOTAL: 50"), 0600))

	text, err := FileClient{}.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL: 50", text)
}

func TestFileClientMissingSidecar(t *testing.T) {
	_, err := FileClient{}.ExtractText(context.Background(), filepath.Join(t.TempDir(), "receipt.jpg"))
	assert.ErrorIs(t, err, ErrOCR)
}

func TestFileClientEmptySidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blank.txt"), []byte("   \n"), 0600))

	_, err := FileClient{}.ExtractText(context.Background(), filepath.Join(dir, "blank.png"))
	assert.ErrorIs(t, err, ErrOCR)
}
