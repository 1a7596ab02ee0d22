package layout

import (
	"testing"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTower_ZonesInsideGrid(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := newTowerGenerator(2, testDeps(t, seed))
		g.Init()

		zone := g.BuildingZone(voxel.NewGrid())
		assert.False(t, zone.IsDegenerate(), "seed %d", seed)
		assert.GreaterOrEqual(t, zone.Min.X, 1)
		assert.GreaterOrEqual(t, zone.Min.Z, 1)
		assert.LessOrEqual(t, zone.Max.X, g.length-1, "seed %d: зона выходит за стену", seed)
		assert.LessOrEqual(t, zone.Max.Z, g.width-1, "seed %d: зона выходит за стену", seed)

		materials := g.materialsZone()
		assert.GreaterOrEqual(t, materials.Min.X, 1)
		assert.GreaterOrEqual(t, materials.Min.Z, 1)
		assert.Less(t, materials.Max.X, g.length-1, "seed %d", seed)
		assert.Less(t, materials.Max.Z, g.width-1, "seed %d", seed)
	}
}

// Пересечение зоны строительства и кучи материалов не запрещено:
// при достаточном числе сидов оно встречается.
func TestTower_BuildingZoneMayOverlapMaterials(t *testing.T) {
	overlaps := 0
	for seed := int64(0); seed < 300; seed++ {
		g := newTowerGenerator(2, testDeps(t, seed))
		g.Init()

		zone := g.BuildingZone(voxel.NewGrid())
		footprint := voxel.BoundingBox{Min: zone.Min, Max: vec.Vec3{X: zone.Max.X - 1, Y: 1, Z: zone.Max.Z - 1}}
		if footprint.Overlaps(g.materialsZone()) {
			overlaps++
		}
	}
	assert.Greater(t, overlaps, 0)
}

func TestTower_ObjectSpawns(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		g := newTowerGenerator(2, testDeps(t, seed))
		g.Init()

		materials := g.materialsZone()
		objects := g.ObjectSpawnPositions(voxel.NewGrid())
		bulk := materials.Volume()
		require.GreaterOrEqual(t, len(objects), bulk, "seed %d", seed)
		assert.LessOrEqual(t, len(objects)-bulk, maxRandomTowerObjects)

		for _, o := range objects {
			inPile := materials.Contains(vec.Vec3{X: o.X, Y: 1, Z: o.Z})
			switch o.Y {
			case 1:
			case 2:
				assert.True(t, inPile, "seed %d: объект %s висит вне кучи", seed, o)
			default:
				t.Errorf("seed %d: неожиданная высота объекта %s", seed, o)
			}
		}

		// хвост списка - основная масса материалов
		tail := objects[len(objects)-bulk:]
		for _, o := range tail {
			assert.True(t, materials.Contains(o), "seed %d", seed)
		}
	}
}

func TestTower_AgentSpawns(t *testing.T) {
	g := newTowerGenerator(3, testDeps(t, 8))
	g.Init()
	grid := voxel.NewGrid()
	g.Generate(grid)

	agents := g.StartingPositions(grid)
	require.Len(t, agents, 3)
	for _, a := range agents {
		assert.Equal(t, 2, a.Y)
		assert.True(t, a.X >= 1 && a.X < g.length-1)
		assert.True(t, a.Z >= 1 && a.Z < g.width-1)
	}

	exit, err := g.LevelExit(grid)
	require.NoError(t, err)
	assert.True(t, exit.IsDegenerate(), "у башни нет выхода")
}

func TestTower_AgentSpawnPadding(t *testing.T) {
	// агентов больше, чем клеток в комнате 30x25
	const numAgents = 2000
	g := newTowerGenerator(numAgents, testDeps(t, 4))
	g.Init()

	agents := g.StartingPositions(voxel.NewGrid())
	require.Len(t, agents, numAgents)

	interior := (g.length - 2) * (g.width - 2)
	for _, a := range agents[interior:] {
		assert.Equal(t, agents[0], a, "недостающие позиции повторяют первую")
	}
	assert.Equal(t, bulkOnly(g), len(g.ObjectSpawnPositions(voxel.NewGrid())), "случайных объектов не остаётся")
}

func bulkOnly(g *towerGenerator) int {
	return g.materialsZone().Volume()
}
