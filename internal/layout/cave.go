package layout

import (
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/zyedidia/generic/mapset"
)

const (
	initialGrowthProb = 0.8
	growthProbDecay   = 0.995
	caveSeedSpacing   = 7
)

// Площадка выхода по умолчанию, если в пещере не нашлось места
var caveFallbackExit = voxel.BoundingBox{
	Min: vec.Vec3{X: 1, Y: 1, Z: 1},
	Max: vec.Vec3{X: 2, Y: 2, Z: 2},
}

// caveGenerator комната, накрытая потолком на высоте caveHeight,
// под которым случайным заливом выращена полость.
type caveGenerator struct {
	basicGenerator

	caveHeight int
	freeVoxels []vec.Vec3
}

func newCaveGenerator(numAgents int, d deps) *caveGenerator {
	g := &caveGenerator{basicGenerator: *newBasicGenerator(numAgents, d)}
	g.archetype = Cave
	return g
}

func (g *caveGenerator) Init() {
	g.basicGenerator.Init()

	g.caveHeight = g.rng.Range(2, 5)
	g.height = g.rng.Range(3, 5) + g.caveHeight
}

func (g *caveGenerator) Generate(grid *voxel.Grid) {
	g.generateShell(grid)

	cells, cave := g.growCavity()

	// потолок с проёмом над полостью
	for x := 1; x < g.length; x++ {
		for z := 1; z < g.width; z++ {
			c := vec.Vec3{X: x, Y: g.caveHeight, Z: z}
			if cave.Has(c) {
				continue
			}
			grid.SetSolid(c)
		}
	}

	// стенки полости
	for _, c := range cells {
		for _, d := range vec.Directions {
			adjacent := c.Add(d)
			if adjacent.Y > g.caveHeight || cave.Has(adjacent) {
				continue
			}
			grid.SetSolid(adjacent)
		}
	}

	g.freeVoxels = freeVoxels(grid, g.length, g.width, g.caveHeight+1)
	rng.ShuffleSlice(g.rng, g.freeVoxels)
}

// growCavity выращивает полость поиском в ширину от случайных зародышей.
// Каждый сосед принимается с вероятностью growthProb, которая затухает
// после каждого принятия, поэтому размер полости ограничен.
// Возвращает клетки в порядке добавления и множество для проверок.
func (g *caveGenerator) growCavity() ([]vec.Vec3, mapset.Set[vec.Vec3]) {
	growthProb := initialGrowthProb

	cave := mapset.New[vec.Vec3]()
	var cells, queue []vec.Vec3

	numSeeds := max(1, max(g.length, g.width)/caveSeedSpacing+1)
	for i := 0; i < numSeeds; i++ {
		seed := vec.Vec3{
			X: g.rng.Range(2, g.length-2),
			Y: g.caveHeight,
			Z: g.rng.Range(2, g.width-2),
		}
		if !cave.Has(seed) {
			cells = append(cells, seed)
		}
		cave.Put(seed)
		queue = append(queue, seed)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, d := range vec.Directions {
			next := curr.Add(d)

			// число из потока расходуется на каждого соседа, до проверок
			if g.rng.UnitFloat() > growthProb {
				continue
			}
			if cave.Has(next) || !g.insideCaveBounds(next) {
				continue
			}

			queue = append(queue, next)
			cells = append(cells, next)
			cave.Put(next)
			growthProb *= growthProbDecay
		}
	}

	return cells, cave
}

func (g *caveGenerator) insideCaveBounds(c vec.Vec3) bool {
	return c.Y >= 1 && c.Y <= g.caveHeight &&
		c.X >= 2 && c.X < g.length-2 &&
		c.Z >= 1 && c.Z <= g.width-1
}

// freeVoxels для каждой внутренней клетки (x, z) находит верхний твёрдый воксель
// не выше startY-1 и возвращает клетку прямо над ним.
func freeVoxels(grid voxel.Reader, length, width, startY int) []vec.Vec3 {
	var res []vec.Vec3

	for x := 1; x < length-1; x++ {
		for z := 1; z < width-1; z++ {
			for y := startY; y > 0; y-- {
				if s, ok := grid.Get(vec.Vec3{X: x, Y: y - 1, Z: z}); ok && s.Solid {
					res = append(res, vec.Vec3{X: x, Y: y, Z: z})
					break
				}
			}
		}
	}
	return res
}

func (g *caveGenerator) StartingPositions(voxel.Reader) []vec.Vec3 {
	positions := takeSpawns(g.freeVoxels, 0, g.numAgents)
	if len(positions) < g.numAgents {
		g.log.Warn("Only %d free voxels for %d agents", len(positions), g.numAgents)
		g.metrics.degraded(g.archetype, DegradeStartPositions)
	}
	return positions
}

// LevelExit ищет с конца списка свободных вокселей место, где площадка
// помещается по z. Если места нет, возвращается площадка по умолчанию.
func (g *caveGenerator) LevelExit(grid voxel.Reader) (voxel.BoundingBox, error) {
	w, err := g.checkExitPad()
	if err != nil {
		return voxel.BoundingBox{}, err
	}

	for i := len(g.freeVoxels) - 1; i >= 0; i-- {
		v := g.freeVoxels[i]
		if !padFits(grid, v, w) {
			continue
		}

		return voxel.BoundingBox{
			Min: v,
			Max: vec.Vec3{X: v.X + 1, Y: v.Y + 1, Z: v.Z + w},
		}, nil
	}

	g.log.Info("No room for a %d-wide exit pad in the cave, using default %s", w, caveFallbackExit)
	g.metrics.degraded(g.archetype, DegradeCaveExitFallback)
	return caveFallbackExit, nil
}

func padFits(grid voxel.Reader, v vec.Vec3, w int) bool {
	for z := v.Z; z < v.Z+w; z++ {
		if s, ok := grid.Get(vec.Vec3{X: v.X, Y: v.Y, Z: z}); ok && s.Solid {
			return false
		}
	}
	return true
}
