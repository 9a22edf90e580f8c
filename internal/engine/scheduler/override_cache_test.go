package scheduler_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/adapters/config"
	"go.trai.ch/autoload/internal/adapters/fs"
	"go.trai.ch/autoload/internal/adapters/snapshot"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/core/ports/mocks"
	"go.trai.ch/autoload/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func TestRebuild_OverrideSurvivesCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "core", "X.php"), "<?php\nclass X {}\n")
	writeFile(t, filepath.Join(root, "core", "Y.php"), "<?php\nclass Y {}\n")
	writeFile(t, filepath.Join(root, "app", "X.php"), "<?php\nclass X {}\n")

	project := &domain.Project{
		Root:         root,
		RootType:     domain.DefaultRootType,
		CacheDir:     filepath.Join(root, "tmp", "autoload"),
		CacheEnabled: true,
		Builtins:     domain.DefaultBuiltins(),
		Modules: []domain.Module{
			{Name: "core", Path: filepath.Join(root, "core")},
			{Name: "app", Path: filepath.Join(root, "app")},
		},
	}

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, vertex), vertex
		}).AnyTimes()

	var warnings []string
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warnings = append(warnings, msg) }).AnyTimes()

	store := snapshot.NewStore()
	for run := 1; run <= 2; run++ {
		warnings = nil
		sched := scheduler.NewScheduler(
			config.NewOverrideLoader(), store, fs.NewTree(fs.NewWalker()), fs.NewHasher(), telemetry, log,
		)

		res, err := sched.Rebuild(context.Background(), project)
		require.NoError(t, err)

		x, ok := res.Registry.Get("X")
		require.True(t, ok)
		assert.Equal(t, filepath.Join("app", "X.php"), x.File.String(), "run %d", run)

		require.Len(t, warnings, 1, "run %d", run)
		assert.Contains(t, warnings[0], "ambiguous_name")
		assert.Contains(t, warnings[0], `"X"`)

		// core holds no override and is cached from the first run on.
		assert.FileExists(t, filepath.Join(project.CacheDir, "core.msgpack"))
		assert.NoFileExists(t, filepath.Join(project.CacheDir, "app.msgpack"))
	}
}
