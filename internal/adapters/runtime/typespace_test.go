package runtime_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/adapters/runtime"
	"go.trai.ch/autoload/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestTypeSpace_Builtins(t *testing.T) {
	space := runtime.New(domain.DefaultBuiltins(), domain.DefaultRootType)

	assert.True(t, space.Declared("Countable"))
	assert.False(t, space.Declared("Widget"))

	info, ok := space.Describe("Exception")
	require.True(t, ok)
	assert.True(t, info.Builtin)
	assert.Empty(t, space.Materialized())
}

func TestTypeSpace_Load_OrdersSameFileDependencies(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "Shapes.php", `<?php
namespace Geo;
class Square extends Rect implements Shape {
	function area() {}
}
class Rect implements Shape {}
interface Shape {}
`)

	space := runtime.New(nil, "")
	require.NoError(t, space.Load(file))

	assert.Equal(t, []string{`Geo\Shape`, `Geo\Rect`, `Geo\Square`}, space.Materialized())

	info, ok := space.Describe(`Geo\Square`)
	require.True(t, ok)
	assert.Equal(t, domain.KindClass, info.Kind)
	assert.Equal(t, []string{`Geo\Rect`}, info.Supertypes)
	assert.Equal(t, []string{`Geo\Shape`}, info.Interfaces)
	assert.Equal(t, []string{"area"}, info.Methods)
	assert.Equal(t, file, info.File)
	assert.False(t, info.Builtin)
}

func TestTypeSpace_Load_IncludeOnce(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "A.php", "<?php class A {}\n")

	space := runtime.New(nil, "")
	require.NoError(t, space.Load(file))
	require.NoError(t, space.Load(filepath.Join(dir, ".", "A.php")))

	assert.True(t, space.Included(file))
	assert.Equal(t, []string{"A"}, space.Materialized())
}

func TestTypeSpace_Load_CallsHookForExternalTypes(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "Base.php", "<?php class Base {}\n")
	child := writeFile(t, dir, "Child.php", "<?php class Child extends Base implements Countable {}\n")

	space := runtime.New(domain.DefaultBuiltins(), "")
	var requested []string
	space.SetHook(func(name string) error {
		requested = append(requested, name)
		if name == "Base" {
			return space.Load(base)
		}
		return nil
	})

	require.NoError(t, space.Load(child))
	assert.Equal(t, []string{"Base"}, requested)
	assert.Equal(t, []string{"Base", "Child"}, space.Materialized())
}

func TestTypeSpace_Load_RootedClassRequiresRootType(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "Widget.php", "<?php class Widget extends Object {}\n")

	space := runtime.New(nil, "Object")
	var requested []string
	space.SetHook(func(name string) error {
		requested = append(requested, name)
		return nil
	})

	err := space.Load(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownType)
	assert.Equal(t, []string{"Object"}, requested)
	assert.False(t, space.Declared("Widget"))
}

func TestTypeSpace_Load_HookFailure(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "Child.php", "<?php class Child extends Missing {}\n")

	space := runtime.New(nil, "")
	hookErr := errors.New("no such type")
	space.SetHook(func(string) error { return hookErr })

	err := space.Load(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, hookErr)
	assert.False(t, space.Declared("Child"))
}

func TestTypeSpace_Load_Errors(t *testing.T) {
	dir := t.TempDir()
	space := runtime.New(domain.DefaultBuiltins(), "")

	err := space.Load(filepath.Join(dir, "missing.php"))
	require.Error(t, err)

	dup := writeFile(t, dir, "Countable.php", "<?php interface Countable {}\n")
	err = space.Load(dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTypeAlreadyDeclared)
}

func TestTypeSpace_Derive(t *testing.T) {
	space := runtime.New(domain.DefaultBuiltins(), "")

	require.NoError(t, space.Derive(`App\Sub\Iterator`, "Iterator"))
	info, ok := space.Describe(`App\Sub\Iterator`)
	require.True(t, ok)
	assert.Equal(t, domain.KindInterface, info.Kind)
	assert.Equal(t, []string{"Iterator"}, info.Supertypes)
	assert.Empty(t, info.File)

	require.NoError(t, space.Derive(`App\Sub\Exception`, "Exception"))
	info, _ = space.Describe(`App\Sub\Exception`)
	assert.Equal(t, domain.KindClass, info.Kind)

	err := space.Derive(`App\Widget`, "Widget")
	assert.ErrorIs(t, err, domain.ErrUnknownType)

	err = space.Derive(`App\Sub\Exception`, "Exception")
	assert.ErrorIs(t, err, domain.ErrTypeAlreadyDeclared)

	assert.Equal(t, []string{`App\Sub\Iterator`, `App\Sub\Exception`}, space.Materialized())
}
