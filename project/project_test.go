package project

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/syntax"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func TestCollect(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/proj/b.fidl":          "",
		"/proj/a.fidl":          "",
		"/proj/nested/c.fidl":   "",
		"/proj/nested/notes.md": "",
		"/other/d.txt":          "",
	})

	files, err := Collect(fsys, []string{"/proj", "/proj/a.fidl", "/other/d.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/other/d.txt",
		"/proj/a.fidl",
		"/proj/b.fidl",
		"/proj/nested/c.fidl",
	}, files)
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect(afero.NewMemMapFs(), []string{"/nope"})
	assert.Error(t, err)
}

func TestLoadKeepsGoingAfterFailures(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/proj/good.fidl": "interface A {}",
		"/proj/bad.fidl":  "interface {",
		"/proj/dup.fidl":  "interface A {}\ninterface A {}",
	})

	p, err := Load(fsys, []string{"/proj"})
	require.NoError(t, err)
	require.Len(t, p.Files, 3)

	good := p.File("/proj/good.fidl")
	require.NotNil(t, good)
	require.NoError(t, good.Err)
	require.NotNil(t, good.Model)
	assert.Equal(t, "A", good.Model.Interfaces[0].Name)

	var parseErr *syntax.Error
	assert.True(t, errors.As(p.File("/proj/bad.fidl").Err, &parseErr))

	var dupErr *model.DuplicateError
	assert.True(t, errors.As(p.File("/proj/dup.fidl").Err, &dupErr))

	assert.Len(t, p.Failed(), 2)
}

func TestInOrder(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/proj/app.fidl":          "import model \"types/common.fidl\"\nimport x.* from \"media.fidl\"\ninterface App {}",
		"/proj/media.fidl":        "import model \"types/common.fidl\"\ninterface Media {}",
		"/proj/types/common.fidl": "import model \"../external.fidl\"\ntypeCollection Common {}",
	})

	p, err := Load(fsys, []string{"/proj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/types/common.fidl", "/proj/media.fidl"}, p.Dependencies(p.File("/proj/app.fidl")))

	var order []string
	for _, f := range p.InOrder() {
		order = append(order, f.Path)
	}
	assert.Equal(t, []string{"/proj/types/common.fidl", "/proj/media.fidl", "/proj/app.fidl"}, order)
}

func TestInOrderWithCycle(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/proj/a.fidl": "import model \"b.fidl\"",
		"/proj/b.fidl": "import model \"a.fidl\"",
		"/proj/c.fidl": "",
	})

	p, err := Load(fsys, []string{"/proj"})
	require.NoError(t, err)

	var order []string
	for _, f := range p.InOrder() {
		order = append(order, f.Path)
	}
	assert.Equal(t, []string{"/proj/c.fidl", "/proj/a.fidl", "/proj/b.fidl"}, order)
}

func TestBase(t *testing.T) {
	assert.Equal(t, "media/player", Base("/proj", "/proj/media/player.fidl"))
	assert.Equal(t, "player", Base("/proj", "/elsewhere/player.fidl"))
}
