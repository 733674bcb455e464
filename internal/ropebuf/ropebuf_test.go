package ropebuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteOfLineAndLineOfByte(t *testing.T) {
	r := New("package foo\nclass Bar {\n}\n")

	require.Equal(t, uint32(0), r.ByteOfLine(0))
	require.Equal(t, uint32(12), r.ByteOfLine(1))
	require.Equal(t, uint32(24), r.ByteOfLine(2))

	require.Equal(t, 0, r.LineOfByte(5))
	require.Equal(t, 1, r.LineOfByte(12))
	require.Equal(t, 3, r.LineOfByte(26))
}

func TestReplaceInsertsAndReindexes(t *testing.T) {
	r := New("package foo\n")
	edit := r.Replace(8, 11, "bar")

	require.Equal(t, "package bar\n", r.String())
	require.Equal(t, uint32(8), edit.At)
	require.Equal(t, uint32(3), edit.Inserted)
	require.Equal(t, uint32(3), edit.Deleted)
}

func TestReplaceAddsLine(t *testing.T) {
	r := New("package foo\nclass Bar\n")
	r.Replace(len("package foo\n"), len("package foo\n"), "import baz\n")

	require.Equal(t, uint32(0), r.ByteOfLine(0))
	require.Equal(t, uint32(12), r.ByteOfLine(1))
	require.Equal(t, uint32(23), r.ByteOfLine(2))
}

func TestByteSlice(t *testing.T) {
	r := New("hello world")
	require.Equal(t, "world", r.ByteSlice(6, 11))
}

func TestByteOfLSPPosition(t *testing.T) {
	r := New("package foo\nclass Bar\n")
	require.Equal(t, uint32(12+2), r.ByteOfLSPPosition(1, 2))
}
