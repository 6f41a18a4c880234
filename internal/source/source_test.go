package source_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/source"
)

func TestFileDisplay(t *testing.T) {
	s := source.NewFile("/tmp/main.go", nil)
	require.True(t, s.IsFile())
	require.Equal(t, "/tmp/main.go", s.Display())
}

func TestEphemeralDisplay(t *testing.T) {
	s := source.NewEphemeral("scratch-1")
	require.False(t, s.IsFile())
	require.Equal(t, "scratch-1", s.Display())
}

func TestNullDisplay(t *testing.T) {
	s := source.Null()
	require.Equal(t, "", s.Display())
}

func TestNewEphemeralAutoUnique(t *testing.T) {
	a := source.NewEphemeralAuto()
	b := source.NewEphemeralAuto()
	require.NotEqual(t, a.Name, b.Name)
}
