package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports/mocks"
	"go.trai.ch/autoload/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// fakeRuntime declares the names listed for a file when it is loaded.
type fakeRuntime struct {
	files    map[string][]string
	declared map[string]bool
	order    []string
	derived  map[string]string
	failing  map[string]error
}

func newFakeRuntime(files map[string][]string) *fakeRuntime {
	return &fakeRuntime{
		files:    files,
		declared: make(map[string]bool),
		derived:  make(map[string]string),
		failing:  make(map[string]error),
	}
}

func (f *fakeRuntime) Declared(name string) bool { return f.declared[name] }

func (f *fakeRuntime) Load(file string) error {
	if err := f.failing[file]; err != nil {
		return err
	}
	for _, name := range f.files[file] {
		f.declared[name] = true
		f.order = append(f.order, name)
	}
	return nil
}

func (f *fakeRuntime) Derive(name, base string) error {
	f.derived[name] = base
	f.declared[name] = true
	f.order = append(f.order, name)
	return nil
}

func (f *fakeRuntime) Describe(string) (domain.TypeInfo, bool) { return domain.TypeInfo{}, false }

func registry(classes, interfaces map[string]domain.Entry) *domain.Registry {
	b := domain.NewBatch()
	for k, v := range classes {
		b.Classes[k] = v
	}
	for k, v := range interfaces {
		b.Interfaces[k] = v
	}
	r := domain.NewRegistry()
	r.Merge(b)
	return r
}

var project = &domain.Project{Root: "/app"}

func TestEnsureDeclared_CoreScenario(t *testing.T) {
	reg := registry(map[string]domain.Entry{
		"A": {File: "core/A.php"},
		"B": {File: "core/B.php", Supertypes: []string{"A"}},
	}, nil)
	rt := newFakeRuntime(map[string][]string{
		"/app/core/A.php": {"A"},
		"/app/core/B.php": {"B"},
	})
	r := resolver.New(project, reg, rt)

	require.NoError(t, r.EnsureDeclared("B"))
	assert.Equal(t, []string{"A", "B"}, rt.order)
	assert.Equal(t, domain.StateDeclared, r.State("B"))
	assert.Equal(t, domain.StateDeclared, r.State("A"))
}

func TestEnsureDeclared_DependencyOrder(t *testing.T) {
	reg := registry(map[string]domain.Entry{
		"B": {File: "B.php", Interfaces: []string{"I"}},
		"C": {File: "C.php", Supertypes: []string{"B"}},
	}, map[string]domain.Entry{
		"I": {File: "I.php"},
	})
	rt := newFakeRuntime(map[string][]string{
		"/app/I.php": {"I"},
		"/app/B.php": {"B"},
		"/app/C.php": {"C"},
	})
	r := resolver.New(project, reg, rt)

	require.NoError(t, r.EnsureDeclared("C"))
	assert.Equal(t, []string{"I", "B", "C"}, rt.order)
}

func TestEnsureDeclared_InterfaceFailureStopsMaterialization(t *testing.T) {
	reg := registry(map[string]domain.Entry{
		"B": {File: "B.php", Interfaces: []string{"I"}},
		"C": {File: "C.php", Supertypes: []string{"B"}},
	}, map[string]domain.Entry{
		"I": {File: "I.php"},
	})
	rt := newFakeRuntime(map[string][]string{
		"/app/B.php": {"B"},
		"/app/C.php": {"C"},
	})
	rt.failing["/app/I.php"] = errors.New("permission denied")
	r := resolver.New(project, reg, rt)

	err := r.EnsureDeclared("C")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParentDeclarationFailed))
	assert.True(t, errors.Is(err, domain.ErrInterfaceDeclarationFailed))
	assert.True(t, errors.Is(err, domain.ErrSourceFileCorrupt))
	assert.Empty(t, rt.order)
	assert.Equal(t, domain.StateFailed, r.State("C"))
}

func TestEnsureDeclared_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt := mocks.NewMockRuntime(ctrl)
	reg := registry(map[string]domain.Entry{"A": {File: "A.php"}}, nil)
	r := resolver.New(project, reg, rt)

	gomock.InOrder(
		rt.EXPECT().Declared("A").Return(false),
		rt.EXPECT().Load("/app/A.php").Return(nil).Times(1),
		rt.EXPECT().Declared("A").Return(true),
		rt.EXPECT().Declared("A").Return(true),
	)

	require.NoError(t, r.EnsureDeclared("A"))
	require.NoError(t, r.EnsureDeclared(`\A`))
}

func TestEnsureDeclared_AlreadyMaterializedSkipsRegistry(t *testing.T) {
	rt := newFakeRuntime(nil)
	rt.declared["ArrayAccess"] = true
	r := resolver.New(project, domain.NewRegistry(), rt)

	require.NoError(t, r.EnsureDeclared("ArrayAccess"))
	assert.Empty(t, rt.order)
}

func TestEnsureDeclared_Unknown(t *testing.T) {
	r := resolver.New(project, domain.NewRegistry(), newFakeRuntime(nil))

	err := r.EnsureDeclared(`App\Missing`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownType))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, `App\Missing`, zErr.Metadata()["type"])
}

func TestEnsureDeclared_FallbackSynthesis(t *testing.T) {
	reg := registry(map[string]domain.Entry{
		`App\Widget`: {File: "App/Widget.php"},
	}, nil)
	rt := newFakeRuntime(map[string][]string{
		"/app/App/Widget.php": {`App\Widget`},
	})
	r := resolver.New(project, reg, rt)

	require.NoError(t, r.EnsureDeclared(`App\Sub\Widget`))
	assert.Equal(t, `App\Widget`, rt.derived[`App\Sub\Widget`])
	assert.Equal(t, []string{`App\Widget`, `App\Sub\Widget`}, rt.order)

	decl, ok := reg.Get(`App\Sub\Widget`)
	require.True(t, ok)
	assert.Equal(t, domain.KindSynthesized, decl.Kind)
	assert.Equal(t, `App\Widget`, decl.Base)
}

func TestEnsureDeclared_FallbackToGlobal(t *testing.T) {
	reg := registry(map[string]domain.Entry{"Widget": {File: "Widget.php"}}, nil)
	rt := newFakeRuntime(map[string][]string{"/app/Widget.php": {"Widget"}})
	r := resolver.New(project, reg, rt)

	require.NoError(t, r.EnsureDeclared(`App\Sub\Widget`))
	assert.Equal(t, "Widget", rt.derived[`App\Sub\Widget`])
}

func TestEnsureDeclared_CorruptIndex(t *testing.T) {
	reg := registry(map[string]domain.Entry{"A": {File: "A.php"}}, nil)
	rt := newFakeRuntime(map[string][]string{"/app/A.php": {"Other"}})
	r := resolver.New(project, reg, rt)

	err := r.EnsureDeclared("A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceFileCorrupt))
}

func TestEnsureDeclared_Cycle(t *testing.T) {
	reg := registry(map[string]domain.Entry{
		"A": {File: "A.php", Supertypes: []string{"B"}},
		"B": {File: "B.php", Supertypes: []string{"A"}},
	}, nil)
	rt := newFakeRuntime(nil)
	r := resolver.New(project, reg, rt)

	err := r.EnsureDeclared("A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCyclicDependency))
	assert.Contains(t, err.Error(), "cyclic dependency")
	assert.Empty(t, rt.order)

	cycle, ok := findCycle(err)
	require.True(t, ok)
	assert.Equal(t, "A -> B -> A", cycle)
}

// findCycle looks for the cycle metadata anywhere in the chain.
func findCycle(err error) (string, bool) {
	for err != nil {
		if z, ok := err.(*zerr.Error); ok {
			if c, ok := z.Metadata()["cycle"].(string); ok {
				return c, true
			}
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				if c, ok := findCycle(inner); ok {
					return c, true
				}
			}
			return "", false
		}
		err = errors.Unwrap(err)
	}
	return "", false
}

func TestEnsureDeclared_RetriesAfterFailure(t *testing.T) {
	reg := registry(map[string]domain.Entry{"A": {File: "A.php"}}, nil)
	rt := newFakeRuntime(map[string][]string{"/app/A.php": {"A"}})
	rt.failing["/app/A.php"] = errors.New("busy")
	r := resolver.New(project, reg, rt)

	require.Error(t, r.EnsureDeclared("A"))
	delete(rt.failing, "/app/A.php")
	require.NoError(t, r.EnsureDeclared("A"))
}
