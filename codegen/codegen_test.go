package codegen

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/syntax"
)

func buildModel(t *testing.T, input string) *model.File {
	t.Helper()
	tree, err := syntax.Parse([]byte(input))
	require.NoError(t, err)
	f, err := model.Build([]byte(input), tree)
	require.NoError(t, err)
	return f
}

func u64(v uint64) *uint64 { return &v }

func TestNumberEnum(t *testing.T) {
	tests := []struct {
		name   string
		values []model.EnumValue
		want   []Enumerator
	}{
		{
			name:   "implicit from zero",
			values: []model.EnumValue{{Name: "A"}, {Name: "B"}, {Name: "C"}},
			want:   []Enumerator{{"A", 0}, {"B", 1}, {"C", 2}},
		},
		{
			name:   "implicit skips written values",
			values: []model.EnumValue{{Name: "A"}, {Name: "B", Value: u64(1)}, {Name: "C"}, {Name: "D", Value: u64(0)}},
			want:   []Enumerator{{"A", 2}, {"B", 1}, {"C", 3}, {"D", 0}},
		},
		{
			name:   "gaps are filled",
			values: []model.EnumValue{{Name: "A", Value: u64(5)}, {Name: "B"}, {Name: "C"}},
			want:   []Enumerator{{"A", 5}, {"B", 0}, {"C", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumberEnum(model.Enumeration{Name: "E", Values: tt.values})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberEnumRejectsDuplicateValues(t *testing.T) {
	_, err := NumberEnum(model.Enumeration{Name: "E", Values: []model.EnumValue{
		{Name: "A", Value: u64(3)},
		{Name: "B"},
		{Name: "C", Value: u64(3)},
	}})
	var valueErr *EnumValueError
	require.True(t, errors.As(err, &valueErr), "got %v", err)
	assert.Equal(t, "enumeration E: A and C both have value 3", err.Error())
}

func TestEnumSize(t *testing.T) {
	tests := []struct {
		name    string
		details string
		largest uint64
		want    int
		wantErr bool
	}{
		{name: "small", largest: 255, want: 8},
		{name: "sixteen", largest: 256, want: 16},
		{name: "thirty-two", largest: 0x10000, want: 32},
		{name: "sixty-four", largest: 0x100000000, want: 64},
		{name: "annotated", details: "size = 32", largest: 1, want: 32},
		{name: "annotated too small", details: "size = 8", largest: 300, wantErr: true},
		{name: "annotated odd size", details: "size = 12", largest: 1, wantErr: true},
		{name: "annotated not a number", details: "size = big", largest: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := model.Enumeration{Name: "E"}
			if tt.details != "" {
				e.Annotations = []model.Annotation{{Name: "details", Content: tt.details}}
			}
			got, err := enumSize(e, []Enumerator{{"A", tt.largest}})
			if tt.wantErr {
				var detailsErr *DetailsError
				assert.True(t, errors.As(err, &detailsErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const player = `interface Player {
    version { major 1 minor 4 }
    typedef Id is UInt32
    attribute UInt8 volume
    method play { in { Id track } out { Boolean started } }
    method stop {}
    enumeration State { Idle Playing = 0 }
    struct Track { Id id String[] tags }
}`

func TestRust(t *testing.T) {
	outputs, err := Rust{}.Generate(buildModel(t, player), "media/player")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "media/player.rs", outputs[0].Path)
	assert.Equal(t, `pub mod player {
    pub const VERSION_MAJOR: u32 = 1;
    pub const VERSION_MINOR: u32 = 4;

    pub type Id = u32;

    pub struct Track {
        pub id: Id,
        pub tags: Vec<String>,
    }

    #[repr(u8)]
    pub enum State {
        Idle = 1,
        Playing = 0,
    }

    pub trait Player {
        fn get_volume(&self) -> u8;
        fn set_volume(&mut self, volume: u8);
        fn play(&mut self, track: Id) -> bool;
        fn stop(&mut self);
    }
}
`, outputs[0].Content)
}

func TestPython(t *testing.T) {
	f := buildModel(t, `<** @details: id = 0x10 **>
interface Player {
    attribute UInt8 volume
    <** @details: id = 2 **>
    method seek { in { UInt32 position } out { UInt32 position Boolean ok } }
    <** @details: size = 16 **>
    enumeration State { Idle }
}
typeCollection { struct Empty {} }`)

	outputs, err := Python{}.Generate(f, "player")
	require.NoError(t, err)
	require.Len(t, outputs, 3)
	assert.Equal(t, Output{Path: "player/__init__.py"}, outputs[0])

	assert.Equal(t, "player/types.py", outputs[1].Path)
	assert.Equal(t, `from dataclasses import dataclass
from enum import IntEnum

VERSION_MAJOR: int = 0
VERSION_MINOR: int = 0


@dataclass(frozen=True)
class Empty:
    pass
`, outputs[1].Content)

	assert.Equal(t, "player/Player.py", outputs[2].Path)
	assert.Equal(t, `from dataclasses import dataclass
from enum import IntEnum

VERSION_MAJOR: int = 0
VERSION_MINOR: int = 0


class State(IntEnum):
    """16-bit enumeration."""
    Idle = 0


class Player:
    ID: int = 16

    def get_volume(self) -> int:
        raise NotImplementedError

    def set_volume(self, volume: int) -> None:
        raise NotImplementedError

    def seek(self, position: int) -> tuple[int, bool]:
        """id = 2"""
        raise NotImplementedError
`, outputs[2].Content)
}

func TestJS(t *testing.T) {
	outputs, err := JS{}.Generate(buildModel(t, player), "player")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, `export const Player = Object.freeze({
    VERSION: Object.freeze({ major: 1, minor: 4 }),
    State: Object.freeze({
        Idle: 1,
        Playing: 0,
    }),
});
`, outputs[0].Content)
}

func TestGeneratorsReportEnumErrors(t *testing.T) {
	f := buildModel(t, "interface A { enumeration E { X = 1 Y = 1 } }")
	for _, g := range []Generator{Rust{}, Python{}, JS{}} {
		t.Run(g.Name(), func(t *testing.T) {
			_, err := g.Generate(f, "a")
			var valueErr *EnumValueError
			assert.True(t, errors.As(err, &valueErr), "got %v", err)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"js", "python", "rust"}, r.Names())

	g, err := r.Lookup("rust")
	require.NoError(t, err)
	assert.Equal(t, "rust", g.Name())

	_, err = r.Lookup("cobol")
	assert.EqualError(t, err, `unknown target "cobol", expected one of [js python rust]`)
}

func TestWriteOutputs(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := WriteOutputs(fs, "out", []Output{
		{Path: "a/b.rs", Content: "x\n"},
		{Path: "c.js", Content: "y\n"},
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "out/a/b.rs")
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))

	exists, err := afero.Exists(fs, "out/c.js")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSnake(t *testing.T) {
	assert.Equal(t, "player", snake("Player"))
	assert.Equal(t, "track_id", snake("trackId"))
	assert.Equal(t, "http_server", snake("HTTPServer"))
}
