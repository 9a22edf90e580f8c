package ports_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/autoload/internal/core/ports"
)

func TestWatchEvent_Within(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "src", "app")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "root itself", path: root, want: true},
		{name: "nested file", path: filepath.Join(root, "Http", "Kernel.php"), want: true},
		{name: "sibling with shared prefix", path: root + "lication", want: false},
		{name: "parent", path: filepath.Dir(root), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := ports.WatchEvent{Path: tt.path, Operation: ports.OpWrite}
			assert.Equal(t, tt.want, event.Within(root+string(filepath.Separator)))
		})
	}
}

func TestWatchOp_String(t *testing.T) {
	assert.Equal(t, "create", ports.OpCreate.String())
	assert.Equal(t, "rename", ports.OpRename.String())
	assert.Equal(t, "unknown", ports.WatchOp(42).String())
}
