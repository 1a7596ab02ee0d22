package layout

import (
	"io"
	"testing"

	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger(t *testing.T) *logging.Logger {
	t.Helper()
	l, err := logging.NewLogger("layout-test")
	require.NoError(t, err)
	l.SetOutput(io.Discard)
	return l
}

func testDeps(t *testing.T, seed int64) deps {
	return deps{rng: rng.New(seed), log: quietLogger(t)}
}

func newTestComponent(t *testing.T, seed int64) *Component {
	return NewComponent(rng.New(seed), WithLogger(quietLogger(t)))
}

// assertPartition проверяет, что боксы покрывают ровно твёрдые воксели без пересечений
func assertPartition(t *testing.T, grid *voxel.Grid, boxes []voxel.BoundingBox) {
	t.Helper()

	covered := make(map[vec.Vec3]int)
	for _, b := range boxes {
		require.True(t, b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z, "min <= max: %s", b)
		b.Each(func(c vec.Vec3) {
			covered[c]++
			assert.True(t, grid.IsSolid(c), "бокс %s покрывает нетвёрдый воксель %s", b, c)
		})
	}

	for c, n := range covered {
		assert.Equal(t, 1, n, "воксель %s покрыт %d раз", c, n)
	}
	assert.Equal(t, grid.SolidCount(), len(covered), "все твёрдые воксели должны быть покрыты")
}
