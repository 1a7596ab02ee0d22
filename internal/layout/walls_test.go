package layout

import (
	"testing"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalls_PositionsStrictlyIncreasing(t *testing.T) {
	sawWalls := false
	for seed := int64(0); seed < 200; seed++ {
		g := newWallsGenerator(2, testDeps(t, seed))
		g.Init()

		assert.LessOrEqual(t, len(g.walls), maxNumWalls)
		for i, w := range g.walls {
			sawWalls = true
			assert.GreaterOrEqual(t, w.x, g.firstWallX, "seed %d", seed)
			assert.Less(t, w.x, g.length-1, "seed %d", seed)
			assert.True(t, w.height >= 1 && w.height <= tallestWall, "seed %d: высота %d", seed, w.height)
			if i > 0 {
				assert.Greater(t, w.x, g.walls[i-1].x, "seed %d: стены должны идти по возрастанию x", seed)
			}
		}
		assert.GreaterOrEqual(t, g.height, 3+g.maxWallHeight)
	}
	assert.True(t, sawWalls)
}

func TestWalls_GenerateFillsWallSlabs(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g := newWallsGenerator(2, testDeps(t, seed))
		g.Init()
		grid := voxel.NewGrid()
		g.Generate(grid)

		for _, w := range g.walls {
			for y := 1; y <= w.height; y++ {
				for z := 1; z < g.width-1; z++ {
					assert.True(t, grid.IsSolid(vec.Vec3{X: w.x, Y: y, Z: z}), "seed %d", seed)
				}
			}
		}
	}
}

func TestWalls_SpawnsBeforeFirstWall(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		g := newWallsGenerator(2, testDeps(t, seed))
		g.Init()
		grid := voxel.NewGrid()
		g.Generate(grid)

		agents := g.StartingPositions(grid)
		objects := g.ObjectSpawnPositions(grid)
		assert.Len(t, agents, 2, "seed %d", seed)

		seen := make(map[vec.Vec3]bool)
		for _, p := range append(append([]vec.Vec3{}, agents...), objects...) {
			assert.False(t, seen[p], "seed %d: позиция %s выдана дважды", seed, p)
			seen[p] = true
			assert.True(t, p.X >= 1 && p.X < g.firstWallX, "seed %d: %s за первой стеной", seed, p)
			assert.Equal(t, 1, p.Y)
			assert.False(t, grid.IsSolid(p))
		}

		minObjects := 0
		for _, w := range g.walls {
			minObjects += (w.height - 1) * 2
		}
		assert.LessOrEqual(t, len(objects), minObjects+3, "seed %d", seed)
	}
}

func TestWalls_LevelExitBeyondLastWall(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		g := newWallsGenerator(2, testDeps(t, seed))
		g.Init()

		exit, err := g.LevelExit(voxel.NewGrid())
		require.NoError(t, err)
		assert.Greater(t, exit.Min.X, g.maxWallX, "seed %d", seed)
		assert.Less(t, exit.Min.X, g.length-1, "seed %d", seed)
		assert.Equal(t, 2, exit.Max.Z-exit.Min.Z)
	}
}

func TestWalls_PlaceWallsRunsOutOfRoom(t *testing.T) {
	d := testDeps(t, 5)
	d.metrics = NewMetrics(nil)

	g := newWallsGenerator(1, d)
	g.width = 7
	// комната короче минимальной длины для четырёх стен
	g.length = 11
	g.placeWalls(4, 15)

	require.NotEmpty(t, g.walls)
	assert.Less(t, len(g.walls), 4, "часть стен должна быть пропущена")
	for i := 1; i < len(g.walls); i++ {
		assert.Greater(t, g.walls[i].x, g.walls[i-1].x)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.degradations.WithLabelValues("walls", DegradeWallShortfall)))
}
