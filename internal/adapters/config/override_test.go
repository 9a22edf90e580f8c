package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/adapters/config"
	"go.trai.ch/autoload/internal/core/domain"
)

func TestOverrideLoader_Absent(t *testing.T) {
	override, err := config.NewOverrideLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, override)
}

func TestOverrideLoader_LegacyOnly(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.LegacyOverrideFileName, "ignore_all = true\n")

	override, err := config.NewOverrideLoader().Load(dir)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.True(t, override.Legacy)
	assert.Nil(t, override.Patch.IgnoreAll)
}

func TestOverrideLoader_SettingsAndBindings(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.OverrideFileName, `
mandatory_superclass = false
matching_filename = off
notify_on_multiple_definitions_per_file = 0
revalidate_cache_delay = 30
ignore_folders = generated, build
ignore_files = README.md
ignore_extensions = txt,md
colour = blue

[Smarty]
filename = vendor/Smarty.class.php

[Broken]
`)

	override, err := config.NewOverrideLoader().Load(dir)
	require.NoError(t, err)
	require.NotNil(t, override)

	patch := override.Patch
	require.NotNil(t, patch.MandatorySuperclass)
	assert.False(t, *patch.MandatorySuperclass)
	require.NotNil(t, patch.MatchingFilename)
	assert.False(t, *patch.MatchingFilename)
	require.NotNil(t, patch.NotifyOnMultipleDefinitionsPerFile)
	assert.False(t, *patch.NotifyOnMultipleDefinitionsPerFile)
	assert.Nil(t, patch.MandatoryCommentBlock)
	require.NotNil(t, patch.RevalidateCacheDelay)
	assert.Equal(t, 30*time.Second, *patch.RevalidateCacheDelay)
	require.NotNil(t, patch.IgnoreFolders)
	assert.Equal(t, []string{"generated", "build"}, *patch.IgnoreFolders)
	require.NotNil(t, patch.IgnoreFiles)
	assert.Equal(t, []string{"README.md"}, *patch.IgnoreFiles)
	require.NotNil(t, patch.TolerateAllExtensions)
	assert.False(t, *patch.TolerateAllExtensions)
	require.NotNil(t, patch.TolerateExtensions)
	assert.Equal(t, []string{"txt", "md"}, *patch.TolerateExtensions)

	assert.Equal(t, []domain.Binding{
		{Name: "Smarty", File: filepath.Join("vendor", "Smarty.class.php")},
	}, override.Bindings)
	assert.Equal(t, []string{"colour", "Broken"}, override.Invalid)
	assert.False(t, override.Legacy)

	settings := patch.Apply(domain.DefaultSettings())
	assert.False(t, settings.MatchingFilename)
	assert.True(t, settings.IgnoresFolder("generated"))
	assert.False(t, settings.ToleratesExtension("notes.rst"))
	assert.True(t, settings.ToleratesExtension("notes.md"))
}

func TestOverrideLoader_Values(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, o *domain.Override)
	}{
		{
			name: "delay disabled",
			line: "revalidate_cache_delay = false",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				require.NotNil(t, o.Patch.RevalidateCacheDelay)
				assert.Zero(t, *o.Patch.RevalidateCacheDelay)
			},
		},
		{
			name: "negative delay",
			line: "revalidate_cache_delay = -5",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				assert.Nil(t, o.Patch.RevalidateCacheDelay)
				assert.Equal(t, []string{"revalidate_cache_delay"}, o.Invalid)
			},
		},
		{
			name: "tolerate every extension",
			line: "ignore_extensions = true",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				require.NotNil(t, o.Patch.TolerateAllExtensions)
				assert.True(t, *o.Patch.TolerateAllExtensions)
				assert.Nil(t, o.Patch.TolerateExtensions)
			},
		},
		{
			name: "tolerate no extension",
			line: "ignore_extensions = false",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				require.NotNil(t, o.Patch.TolerateAllExtensions)
				assert.False(t, *o.Patch.TolerateAllExtensions)
				require.NotNil(t, o.Patch.TolerateExtensions)
				assert.Empty(t, *o.Patch.TolerateExtensions)
			},
		},
		{
			name: "bad boolean",
			line: "ignore_all = sometimes",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				assert.Nil(t, o.Patch.IgnoreAll)
				assert.Equal(t, []string{"ignore_all"}, o.Invalid)
			},
		},
		{
			name: "ignore all",
			line: "ignore_all = yes",
			check: func(t *testing.T, o *domain.Override) {
				t.Helper()
				require.NotNil(t, o.Patch.IgnoreAll)
				assert.True(t, *o.Patch.IgnoreAll)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, domain.OverrideFileName, tt.line+"\n")

			override, err := config.NewOverrideLoader().Load(dir)
			require.NoError(t, err)
			require.NotNil(t, override)
			tt.check(t, override)
		})
	}
}

func TestOverrideLoader_WithLegacyFile(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.OverrideFileName, "ignore_all = 1\n")
	createFile(t, dir, domain.LegacyOverrideFileName, "")

	override, err := config.NewOverrideLoader().Load(dir)
	require.NoError(t, err)
	assert.True(t, override.Legacy)
	require.NotNil(t, override.Patch.IgnoreAll)
	assert.True(t, *override.Patch.IgnoreAll)
}

func TestOverrideLoader_Malformed(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.OverrideFileName, "[unterminated\n")

	_, err := config.NewOverrideLoader().Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
