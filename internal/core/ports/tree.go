package ports

import "time"

// TreeInspector reports on source trees.
//
//go:generate mockgen -source=tree.go -destination=mocks/mock_tree.go -package=mocks
type TreeInspector interface {
	// LatestModTime returns the most recent modification time of any file or folder under root.
	LatestModTime(root string) (time.Time, error)
}
