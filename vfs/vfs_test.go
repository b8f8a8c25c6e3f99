package vfs

import (
	"archive/zip"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFactory(t *testing.T) {
	mem := NewMemory().
		Add("mods/mine.zip", makeZip(t, map[string]string{"ANIMS/AbeWalking.anim": "x"})).
		Add("ae/ae.bin", []byte{0}).
		Add("ae/readme.txt", []byte("hi")).
		Add("data/R1.LVL", []byte("lvl"))

	tests := []struct {
		name   string
		path   string
		is     error
		verify func(t *testing.T, f FileSystem)
	}{
		{name: "empty", path: "", is: ErrEmptyPath},
		{name: "iso", path: "ae/ae.bin", is: ErrUnsupportedArchive},
		{name: "unknown", path: "ae/readme.txt", is: ErrUnknownArchive},
		{
			name: "zip",
			path: "mods/mine.zip",
			verify: func(t *testing.T, f FileSystem) {
				require.IsType(t, &Zip{}, f)
				require.True(t, f.FileExists("anims/abewalking.anim"))
				data, err := ReadFile(f, "ANIMS/AbeWalking.anim")
				require.NoError(t, err)
				require.Equal(t, "x", string(data))
			},
		},
		{
			name: "directory",
			path: "data",
			verify: func(t *testing.T, f FileSystem) {
				require.IsType(t, &DirectoryLimited{}, f)
				require.True(t, f.FileExists("R1.LVL"))
				require.False(t, f.FileExists("R2.LVL"))
				require.Equal(t, "mem:/data", f.FsPath())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Factory(mem, tc.path)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
				require.Nil(t, f)
				return
			}
			require.NoError(t, err)
			tc.verify(t, f)
		})
	}
}

func TestFactoryBrokenZip(t *testing.T) {
	mem := NewMemory().Add("bad.zip", []byte("not a zip"))
	_, err := Factory(mem, "bad.zip")
	require.Error(t, err)
}

func TestMemoryMissing(t *testing.T) {
	_, err := NewMemory().Open("nope")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("abc"), 0o644))

	o := NewOS(dir)
	require.True(t, o.FileExists("sub/a.txt"))
	require.False(t, o.FileExists("sub"))

	view := NewDirectoryLimited(o, "sub")
	data, err := ReadFile(view, "a.txt")
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
}
