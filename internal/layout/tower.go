package layout

import (
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

const maxRandomTowerObjects = 25

// towerGenerator арена для строительства башни: пустая комната,
// зона строительства и куча материалов. Размеры выбираются независимо
// от базовой комнаты.
type towerGenerator struct {
	basicGenerator

	buildZoneLength, buildZoneWidth    int
	materialsLength, materialsWidth    int
	buildZoneXOffset, buildZoneZOffset int
	materialsXOffset, materialsZOffset int

	agentSpawnCoords  []vec.Vec3
	objectSpawnCoords []vec.Vec3
}

func newTowerGenerator(numAgents int, d deps) *towerGenerator {
	g := &towerGenerator{basicGenerator: *newBasicGenerator(numAgents, d)}
	g.archetype = Towers
	return g
}

func (g *towerGenerator) Init() {
	g.height = g.rng.Range(5, 7)
	g.length = g.rng.Range(12, 30)
	g.width = g.rng.Range(12, 25)

	// размер и положение зоны строительства и кучи материалов
	g.buildZoneLength = g.rng.Range(3, 9)
	g.buildZoneWidth = g.rng.Range(3, 9)

	g.materialsLength = g.rng.Range(2, 8)
	g.materialsWidth = g.rng.Range(2, 8)

	g.length = max(g.buildZoneLength+g.materialsLength+3, g.length)
	g.width = max(g.buildZoneWidth+g.materialsWidth+3, g.width)

	g.buildZoneXOffset = g.rng.Range(1, g.length-g.buildZoneLength-1)
	g.buildZoneZOffset = g.rng.Range(1, g.width-g.buildZoneWidth-1)

	g.materialsXOffset = g.rng.Range(1, g.length-g.materialsLength-1)
	g.materialsZOffset = g.rng.Range(1, g.width-g.materialsWidth-1)

	var candidates []vec.Vec3
	for x := 1; x < g.length-1; x++ {
		for z := 1; z < g.width-1; z++ {
			candidates = append(candidates, vec.Vec3{X: x, Y: 2, Z: z})
		}
	}
	rng.ShuffleSlice(g.rng, candidates)

	g.agentSpawnCoords = takeSpawns(candidates, 0, g.numAgents)
	spawnIdx := len(g.agentSpawnCoords)

	maxRandomObjects := min(len(candidates)-g.numAgents, maxRandomTowerObjects)
	spawnObjects := g.rng.Range(0, max(1, maxRandomObjects))

	g.objectSpawnCoords = takeSpawns(candidates, spawnIdx, spawnObjects)

	materials := g.materialsZone()
	for i, c := range g.objectSpawnCoords {
		if materials.Contains(vec.Vec3{X: c.X, Y: materials.Min.Y, Z: c.Z}) {
			continue
		}
		// объект вне кучи кладём на пол
		g.objectSpawnCoords[i].Y--
	}

	// основная масса материалов
	for x := g.materialsXOffset; x < g.materialsXOffset+g.materialsLength; x++ {
		for z := g.materialsZOffset; z < g.materialsZOffset+g.materialsWidth; z++ {
			g.objectSpawnCoords = append(g.objectSpawnCoords, vec.Vec3{X: x, Y: 1, Z: z})
		}
	}

	if len(g.agentSpawnCoords) < g.numAgents && len(g.agentSpawnCoords) > 0 {
		g.log.Warn("Only %d spawn candidates for %d agents, repeating the first one", len(g.agentSpawnCoords), g.numAgents)
		g.metrics.degraded(g.archetype, DegradeAgentSpawnPadding)
		for len(g.agentSpawnCoords) < g.numAgents {
			g.agentSpawnCoords = append(g.agentSpawnCoords, g.agentSpawnCoords[0])
		}
	}
}

// materialsZone занятые кучей материалов клетки (углы включительно, y = 1)
func (g *towerGenerator) materialsZone() voxel.BoundingBox {
	return voxel.BoundingBox{
		Min: vec.Vec3{X: g.materialsXOffset, Y: 1, Z: g.materialsZOffset},
		Max: vec.Vec3{X: g.materialsXOffset + g.materialsLength - 1, Y: 1, Z: g.materialsZOffset + g.materialsWidth - 1},
	}
}

func (g *towerGenerator) Generate(grid *voxel.Grid) {
	g.generateShell(grid)
}

func (g *towerGenerator) StartingPositions(voxel.Reader) []vec.Vec3 {
	return g.agentSpawnCoords
}

func (g *towerGenerator) ObjectSpawnPositions(voxel.Reader) []vec.Vec3 {
	return g.objectSpawnCoords
}

// LevelExit у башни нет выхода
func (g *towerGenerator) LevelExit(voxel.Reader) (voxel.BoundingBox, error) {
	return voxel.BoundingBox{}, nil
}

// BuildingZone в формате регионов: max = min + размер
func (g *towerGenerator) BuildingZone(voxel.Reader) voxel.BoundingBox {
	return voxel.BoundingBox{
		Min: vec.Vec3{X: g.buildZoneXOffset, Y: 1, Z: g.buildZoneZOffset},
		Max: vec.Vec3{X: g.buildZoneXOffset + g.buildZoneLength, Y: 1, Z: g.buildZoneZOffset + g.buildZoneWidth},
	}
}
