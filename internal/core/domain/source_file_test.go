package domain_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/core/domain"
)

func TestSourceFile(t *testing.T) {
	a := domain.NewSourceFile(filepath.Join("core", "Widget.php"))
	b := domain.NewSourceFile(filepath.Join("core", ".", "Widget.php"))

	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
	assert.Equal(t, filepath.Join("core", "Widget.php"), a.String())

	zero := domain.NewSourceFile("")
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestSourceFile_Text(t *testing.T) {
	type entry struct {
		File domain.SourceFile `json:"file"`
	}

	data, err := json.Marshal(entry{File: domain.NewSourceFile(filepath.Join("app", "C.php"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"app/C.php"}`, string(data))

	var got entry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, filepath.Join("app", "C.php"), got.File.String())
}

func TestDeclaration_EntryKeepsFile(t *testing.T) {
	decl := domain.NewDeclaration("C", domain.KindClass, domain.Entry{File: "app/C.php", Supertypes: []string{"B"}})
	assert.Equal(t, filepath.Clean("app/C.php"), decl.Entry().File)
	assert.Equal(t, "B", decl.Supertype())

	builtin := domain.NewDeclaration("stdClass", domain.KindClass, domain.Entry{})
	assert.True(t, builtin.File.IsZero())
}
