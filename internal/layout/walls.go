package layout

import (
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

const (
	maxNumWalls       = 4
	tallestWall       = 4
	defaultFirstWallX = 3
	maxLevelLength    = 35
)

type wall struct {
	x      int
	height int
}

// wallsGenerator комната с поперечными стенами разной высоты.
// Агенты и объекты появляются перед первой стеной.
type wallsGenerator struct {
	basicGenerator

	walls         []wall
	firstWallX    int
	maxWallX      int
	maxWallHeight int

	agentSpawnCoords  []vec.Vec3
	objectSpawnCoords []vec.Vec3
}

func newWallsGenerator(numAgents int, d deps) *wallsGenerator {
	g := &wallsGenerator{
		basicGenerator: *newBasicGenerator(numAgents, d),
		firstWallX:     defaultFirstWallX,
	}
	g.archetype = Walls
	return g
}

func (g *wallsGenerator) Init() {
	g.basicGenerator.Init()

	numWalls := g.rng.Range(0, maxNumWalls+1)
	// минимум 2 вокселя на стену и запас по краям
	minLength := numWalls*2 + 4 + 3

	g.length = g.rng.Range(minLength, maxLevelLength)

	if numWalls > 0 {
		g.placeWalls(numWalls, minLength)
	}

	g.height = g.rng.Range(3, 5) + g.maxWallHeight

	var candidates []vec.Vec3
	for x := 1; x < g.firstWallX; x++ {
		for z := 1; z < g.width-1; z++ {
			candidates = append(candidates, vec.Vec3{X: x, Y: 1, Z: z})
		}
	}
	rng.ShuffleSlice(g.rng, candidates)

	g.agentSpawnCoords = takeSpawns(candidates, 0, g.numAgents)
	spawnIdx := len(g.agentSpawnCoords)
	if spawnIdx < g.numAgents {
		g.log.Warn("Not enough spawn candidates before the first wall: %d for %d agents", spawnIdx, g.numAgents)
		g.metrics.degraded(g.archetype, DegradeStartPositions)
	}

	minNumObjects := 0
	for _, w := range g.walls {
		minNumObjects += (w.height - 1) * 2
	}
	numObjects := g.rng.Range(minNumObjects, minNumObjects+4)
	if available := len(candidates) - spawnIdx; numObjects > available {
		g.log.Debug("Object count reduced from %d to %d", numObjects, available)
		g.metrics.degraded(g.archetype, DegradeObjectSpawns)
		numObjects = available
	}

	g.objectSpawnCoords = takeSpawns(candidates, spawnIdx, numObjects)
}

// placeWalls расставляет стены слева направо. Если место закончилось,
// генерируется меньше стен, чем запрошено.
func (g *wallsGenerator) placeWalls(numWalls, minLength int) {
	g.firstWallX = g.rng.Range(4, 4+1+g.length-minLength)
	firstWallHeight := g.rng.Range(1, tallestWall+1)
	g.maxWallX = g.firstWallX
	g.maxWallHeight = firstWallHeight

	g.walls = append(g.walls, wall{x: g.firstWallX, height: firstWallHeight})

	prevWallX := g.firstWallX
	for i := 1; i < numWalls; i++ {
		wallHeight := g.rng.Range(1, tallestWall+1)
		remainingSpace := 3 + (numWalls-i-1)*2

		if prevWallX+1 >= g.length-remainingSpace {
			g.log.Warn("Could not generate wall %d, not enough space!", i)
			g.metrics.degraded(g.archetype, DegradeWallShortfall)
			break
		}

		wallX := g.rng.Range(prevWallX+1, g.length-remainingSpace)
		prevWallX = wallX

		g.walls = append(g.walls, wall{x: wallX, height: wallHeight})
		g.maxWallHeight = max(g.maxWallHeight, wallHeight)
		g.maxWallX = max(g.maxWallX, wallX)
	}
}

func (g *wallsGenerator) Generate(grid *voxel.Grid) {
	g.generateShell(grid)

	for _, w := range g.walls {
		for y := 1; y < 1+w.height; y++ {
			for z := 1; z < g.width-1; z++ {
				grid.SetSolid(vec.Vec3{X: w.x, Y: y, Z: z})
			}
		}
	}
}

func (g *wallsGenerator) StartingPositions(voxel.Reader) []vec.Vec3 {
	return g.agentSpawnCoords
}

func (g *wallsGenerator) ObjectSpawnPositions(voxel.Reader) []vec.Vec3 {
	return g.objectSpawnCoords
}

// LevelExit площадка выхода за последней стеной
func (g *wallsGenerator) LevelExit(voxel.Reader) (voxel.BoundingBox, error) {
	w, err := g.checkExitPad()
	if err != nil {
		return voxel.BoundingBox{}, err
	}

	x := g.rng.Range(g.maxWallX+1, g.length-1)
	z := g.rng.Range(1, g.width-1-w)

	return voxel.BoundingBox{
		Min: vec.Vec3{X: x, Y: 1, Z: z},
		Max: vec.Vec3{X: x + 1, Y: 2, Z: z + w},
	}, nil
}
