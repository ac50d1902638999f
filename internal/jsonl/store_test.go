package jsonl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func sampleBook(t *testing.T) *types.AddressBook {
	t.Helper()
	b := types.NewAddressBook()

	alice, err := types.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, alice.AddPhone("0501234567"))
	require.NoError(t, alice.AddPhone("0671112233"))
	require.NoError(t, alice.SetBirthday("03.06.1995"))
	b.AddRecord(alice)

	bob, err := types.NewRecord("bob")
	require.NoError(t, err)
	require.NoError(t, bob.AddPhone("0990000000"))
	b.AddRecord(bob)

	return b
}

func TestLoadMissingFileReturnsEmptyBook(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	b, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestSaveWritesOneLinePerContact(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)
	require.NoError(t, s.Save(sampleBook(t)))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"name":"alice","phones":["+380501234567","+380671112233"],"birthday":"03.06.1995"}`, lines[0])
	assert.Equal(t, `{"name":"bob","phones":["+380990000000"],"birthday":null}`, lines[1])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	want := sampleBook(t)
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want.Snapshot(), got.Snapshot()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStore(dir, nil)
	require.NoError(t, s.Save(types.NewAddressBook()))

	info, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)
	require.NoError(t, s.Save(sampleBook(t)))
	require.NoError(t, s.Save(types.NewAddressBook()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
		wantErr error
	}{
		{
			name:    "malformed line",
			content: "{\"name\":\"alice\",\"phones\":[]}\n{not json\n",
			wantSub: "line 2",
		},
		{
			name:    "invalid stored phone",
			content: "{\"name\":\"alice\",\"phones\":[\"123\"],\"birthday\":null}\n",
			wantErr: types.ErrInvalidPhone,
		},
		{
			name:    "invalid stored birthday",
			content: "{\"name\":\"alice\",\"phones\":[],\"birthday\":\"31.02.2024\"}\n",
			wantErr: types.ErrInvalidBirthday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o644))

			_, err := NewStore(dir, nil).Load()
			require.Error(t, err)
			if tt.wantSub != "" {
				assert.Contains(t, err.Error(), tt.wantSub)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, types.ErrInvalidSnapshot)
			}
		})
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	content := "\n{\"name\":\"alice\",\"phones\":[\"+380501234567\"],\"birthday\":null}\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	b, err := NewStore(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestSaveLoadRecordOver64KiB(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	b := types.NewAddressBook()
	long, err := types.NewRecord(strings.Repeat("x", 70_000))
	require.NoError(t, err)
	for range 5_000 {
		require.NoError(t, long.AddPhone("0501234567"))
	}
	b.AddRecord(long)

	bob, err := types.NewRecord("bob")
	require.NoError(t, err)
	require.NoError(t, bob.AddPhone("0990000000"))
	b.AddRecord(bob)
	require.NoError(t, s.Save(b))

	got, err := s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(b.Snapshot(), got.Snapshot()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLastLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()
	content := "{\"name\":\"alice\",\"phones\":[],\"birthday\":null}\n{\"name\":\"bob\",\"phones\":[],\"birthday\":null}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	b, err := NewStore(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}
