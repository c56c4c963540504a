package ondisk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobsa/minixfs/ondisk"
)

func TestMarshalRoundTrip(t *testing.T) {
	e := ondisk.DirEntry{Ino: 42, Name: "foo.txt"}
	buf := make([]byte, ondisk.DirEntrySize)
	e.Marshal(buf)
	got := ondisk.Unmarshal(buf)
	require.Equal(t, e, got)
}

func TestMarshalFullLengthName(t *testing.T) {
	name := "abcdefghijklmn" // exactly NameLen
	require.Len(t, name, ondisk.NameLen)
	e := ondisk.DirEntry{Ino: 7, Name: name}
	buf := make([]byte, ondisk.DirEntrySize)
	e.Marshal(buf)
	got := ondisk.Unmarshal(buf)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, uint32(7), got.Ino)
}

func TestFreeSlotHasZeroIno(t *testing.T) {
	buf := make([]byte, ondisk.DirEntrySize)
	got := ondisk.Unmarshal(buf)
	assert.Equal(t, uint32(0), got.Ino)
}

func TestMatchName(t *testing.T) {
	dot := ondisk.DirEntry{Ino: 5, Name: "."}
	free := ondisk.DirEntry{Ino: 0, Name: "x"}
	foo := ondisk.DirEntry{Ino: 9, Name: "foo"}

	assert.True(t, ondisk.MatchName("", true, dot))
	assert.False(t, ondisk.MatchName("", true, free))
	assert.False(t, ondisk.MatchName("x", true, free))
	assert.True(t, ondisk.MatchName("foo", true, foo))
	assert.False(t, ondisk.MatchName("fo", true, foo))
	assert.False(t, ondisk.MatchName("foo", false, foo))
	assert.False(t, ondisk.MatchName("this-name-is-too-long", true, foo))
}

func TestSlotOffsets(t *testing.T) {
	assert.Equal(t, 0, ondisk.SlotOffset(0))
	assert.Equal(t, ondisk.DirEntrySize, ondisk.SlotOffset(1))
	assert.Equal(t, 0, ondisk.BlockIndex(0))
	assert.Equal(t, 1, ondisk.BlockIndex(ondisk.DirEntriesPerBlock))
}
