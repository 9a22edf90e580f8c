package cache_test

import (
	"maps"
	"slices"

	"go.trai.ch/autoload/internal/core/domain"
)

func keys(m map[string]domain.Entry) []string {
	return slices.Sorted(maps.Keys(m))
}
