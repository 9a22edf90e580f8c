package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/cmd/autoload/commands"
	"go.trai.ch/autoload/internal/app"
	"go.trai.ch/autoload/internal/build"
	"go.trai.ch/autoload/internal/core/domain"
)

type mockApp struct {
	configPath string
	rebuild    *app.RebuildOptions
	clean      *app.CleanOptions
	watch      *app.WatchOptions
	resolved   []string
	saved      bool
	dumpFormat string
	err        error
}

func (m *mockApp) UseConfig(path string) { m.configPath = path }

func (m *mockApp) Rebuild(_ context.Context, opts app.RebuildOptions) (*domain.Summary, error) {
	m.rebuild = &opts
	return &domain.Summary{}, m.err
}

func (m *mockApp) Resolve(_ context.Context, names []string) error {
	m.resolved = names
	return m.err
}

func (m *mockApp) Describe(_ context.Context, name string) (*app.TypeReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &app.TypeReport{
		TypeInfo: domain.TypeInfo{
			Name:       name,
			Kind:       domain.KindClass,
			Supertypes: []string{"B"},
			Methods:    []string{"run", "stop"},
			File:       "app/C.php",
		},
		Ancestry:      []string{"B", "A"},
		AllInterfaces: []string{"I"},
	}, nil
}

func (m *mockApp) Show(_ context.Context, _ string) (string, []byte, error) {
	return "/src/app/C.php", []byte("<?php\nclass C extends B {}\n"), m.err
}

func (m *mockApp) Validate(_ context.Context) ([]domain.Diagnostic, error) {
	return nil, m.err
}

func (m *mockApp) Dump(_ context.Context, w io.Writer, format string) error {
	m.dumpFormat = format
	_, _ = io.WriteString(w, "dumped\n")
	return m.err
}

func (m *mockApp) SaveDatabase(_ context.Context) error {
	m.saved = true
	return m.err
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.clean = &opts
	return m.err
}

func (m *mockApp) Watch(_ context.Context, opts app.WatchOptions) error {
	m.watch = &opts
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Flags(t *testing.T) {
	t.Run("rebuild with save", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "rebuild", "--save", "--config", "/src/autoload.yaml")
		require.NoError(t, err)
		require.NotNil(t, m.rebuild)
		assert.True(t, m.rebuild.Save)
		assert.Equal(t, "/src/autoload.yaml", m.configPath)
	})

	t.Run("clean all", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean", "-a")
		require.NoError(t, err)
		require.NotNil(t, m.clean)
		assert.True(t, m.clean.All)
	})

	t.Run("watch", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "watch", "--debounce", "50ms")
		require.NoError(t, err)
		require.NotNil(t, m.watch)
		assert.Equal(t, 50*time.Millisecond, m.watch.Window)
		assert.False(t, m.watch.Save)
	})

	t.Run("resolve passes names", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "resolve", "A", `App\Widget`)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", `App\Widget`}, m.resolved)
	})

	t.Run("dump format", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "dump", "-f", "yaml")
		require.NoError(t, err)
		assert.Equal(t, "yaml", m.dumpFormat)
		assert.Equal(t, "dumped\n", out)
	})

	t.Run("save", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "save")
		require.NoError(t, err)
		assert.True(t, m.saved)
	})
}

func TestCommands_Describe(t *testing.T) {
	out, err := execute(t, &mockApp{}, "describe", "C")
	require.NoError(t, err)
	assert.Equal(t, "class C\n"+
		"  file:       app/C.php\n"+
		"  extends:    B\n"+
		"  ancestry:   B -> A\n"+
		"  interfaces: I\n"+
		"  methods:    run, stop\n", out)
}

func TestCommands_Show(t *testing.T) {
	out, err := execute(t, &mockApp{}, "show", "C")
	require.NoError(t, err)
	assert.Equal(t, "<?php\nclass C extends B {}\n", out)

	out, err = execute(t, &mockApp{}, "show", "--path", "C")
	require.NoError(t, err)
	assert.Equal(t, "/src/app/C.php\n", out)
}

func TestCommands_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"rebuild"},
		{"resolve", "A"},
		{"describe", "A"},
		{"validate"},
		{"clean"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := execute(t, &mockApp{err: errors.New("simulated error")}, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "simulated error")
		})
	}
}

func TestCommands_JSONFlag(t *testing.T) {
	var got *bool
	cli := commands.New(&mockApp{})
	cli.OnJSON(func(enable bool) { got = &enable })
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"validate", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestCommands_LoggingFlagsOnlyWhenSet(t *testing.T) {
	var jsonCalls, debugCalls []bool
	cli := commands.New(&mockApp{})
	cli.OnJSON(func(enable bool) { jsonCalls = append(jsonCalls, enable) })
	cli.OnVerbose(func(enable bool) { debugCalls = append(debugCalls, enable) })
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	cli.SetArgs([]string{"validate"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Empty(t, jsonCalls)
	assert.Empty(t, debugCalls)

	cli.SetArgs([]string{"validate", "-v"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Empty(t, jsonCalls)
	assert.Equal(t, []bool{true}, debugCalls)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "autoload "+build.Version+"\n")
	assert.Contains(t, out, "commit: "+build.Commit)

	out, err = execute(t, &mockApp{}, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, build.Version+"\n", out)
}
