package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/autoload/internal/app"
	"go.trai.ch/autoload/internal/build"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T, loader *mocks.MockProjectLoader, log *mocks.MockLogger) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Close().Return(nil)

	application := app.New(loader, nil, mocks.NewMockSnapshotStore(ctrl), mocks.NewMockHasher(ctrl), log, nil)
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:       application,
			Logger:    log,
			Telemetry: telemetry,
		}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := newProvider(t, mocks.NewMockProjectLoader(ctrl), mocks.NewMockLogger(ctrl))

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "autoload "+build.Version)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockProjectLoader(ctrl)
	loader.EXPECT().Load("/nowhere").Return(nil, domain.ErrConfigNotFound)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	provider := newProvider(t, loader, log)
	exitCode := run(context.Background(), []string{"clean", "--config", "/nowhere"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_AppliesOptions verifies that options are applied to the app before execution.
func TestRun_AppliesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockProjectLoader(ctrl)
	loader.EXPECT().Load("/custom").Return(nil, domain.ErrConfigNotFound)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any())

	provider := newProvider(t, loader, log)
	exitCode := run(context.Background(), []string{"validate"}, new(bytes.Buffer), new(bytes.Buffer), provider,
		func(a *app.App) { a.UseConfig("/custom") })
	assert.Equal(t, 1, exitCode)
}
