// Package source implements the buffer identity sum type (spec §6
// "Source identity"): a buffer is backed by a File, an Ephemeral
// in-memory scratch name, or Null.
package source

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the Source variants.
type Kind int

const (
	KindFile Kind = iota
	KindEphemeral
	KindNull
)

// Source identifies what a buffer is backed by. Exactly one of Path
// (KindFile) or Name (KindEphemeral) is meaningful, matching the
// File{Path, ModTime} | Ephemeral{Name} | Null sum type of
// _examples/original_source/src/source.rs.
type Source struct {
	Kind    Kind
	Path    string
	ModTime *time.Time
	Name    string
}

// NewFile returns a File source for path, optionally carrying its last
// known modification time (used by external-change detection).
func NewFile(path string, modTime *time.Time) Source {
	return Source{Kind: KindFile, Path: path, ModTime: modTime}
}

// NewEphemeral returns an Ephemeral source with the given display name.
func NewEphemeral(name string) Source {
	return Source{Kind: KindEphemeral, Name: name}
}

// NewEphemeralAuto mints an Ephemeral source with a uuid-derived name,
// for buffers created with no file argument (cmd/ped's "no name" case).
// Unlike the Rust original's plain incrementing counter, each call mints
// a fresh random name, so names do not collide within a run; a name is
// not kept across editor restarts.
func NewEphemeralAuto() Source {
	return NewEphemeral("scratch-" + uuid.NewString()[:8])
}

// Null returns the Null source (no backing storage, e.g. a throwaway
// buffer used only for previews).
func Null() Source {
	return Source{Kind: KindNull}
}

// Display returns the human-readable identity shown in a banner title.
func (s Source) Display() string {
	switch s.Kind {
	case KindFile:
		return s.Path
	case KindEphemeral:
		return s.Name
	default:
		return ""
	}
}

// IsFile reports whether s is backed by a real file.
func (s Source) IsFile() bool { return s.Kind == KindFile }
