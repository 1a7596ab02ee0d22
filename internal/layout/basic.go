package layout

import (
	"fmt"
	"slices"

	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

// Число попыток выбора стартовой позиции для одного агента
const startPositionAttempts = 10

// deps общие зависимости всех генераторов
type deps struct {
	rng     *rng.Sequencer
	log     *logging.Logger
	metrics *Metrics
}

// basicGenerator комната: пол и стены по периметру, внутри пусто.
// Остальные генераторы строятся поверх неё.
type basicGenerator struct {
	deps
	archetype Archetype
	numAgents int

	// length = x, height = y, width = z
	length, height, width int
}

func newBasicGenerator(numAgents int, d deps) *basicGenerator {
	return &basicGenerator{deps: d, archetype: Empty, numAgents: numAgents}
}

// Init выбирает размеры комнаты
func (g *basicGenerator) Init() {
	g.initFootprint()
	g.height = g.rng.Range(3, 5)
}

func (g *basicGenerator) initFootprint() {
	g.length = g.rng.Range(8, 30)
	g.width = g.rng.Range(7, 25)
}

func (g *basicGenerator) Dimensions() Dimensions {
	return Dimensions{Length: g.length, Height: g.height, Width: g.width}
}

// Generate строит пол и стены по периметру
func (g *basicGenerator) Generate(grid *voxel.Grid) {
	g.generateShell(grid)
}

func (g *basicGenerator) generateShell(grid *voxel.Grid) {
	// пол
	for x := 0; x < g.length; x++ {
		for z := 0; z < g.width; z++ {
			grid.SetSolid(vec.Vec3{X: x, Y: 0, Z: z})
		}
	}

	// стены по периметру
	for _, x := range []int{0, g.length - 1} {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.width; z++ {
				grid.SetSolid(vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}

	for x := 0; x < g.length; x++ {
		for y := 0; y < g.height; y++ {
			for _, z := range []int{0, g.width - 1} {
				grid.SetSolid(vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
}

func (g *basicGenerator) ExtractPrimitives(grid voxel.Iterable) []voxel.BoundingBox {
	return ExtractPrimitives(grid)
}

// checkExitPad проверяет, что площадка выхода помещается по ширине
func (g *basicGenerator) checkExitPad() (int, error) {
	w := exitPadWidth(g.numAgents)
	if g.width-2 < w {
		return w, fmt.Errorf("%w: width %d, pad width %d", ErrExitPadDoesNotFit, g.width, w)
	}
	return w, nil
}

// LevelExit ставит площадку выхода у дальней стены по x
func (g *basicGenerator) LevelExit(voxel.Reader) (voxel.BoundingBox, error) {
	w, err := g.checkExitPad()
	if err != nil {
		return voxel.BoundingBox{}, err
	}

	x := g.rng.Range(g.length-2, g.length-1)
	z := g.rng.Range(1, g.width-w)

	return voxel.BoundingBox{
		Min: vec.Vec3{X: x, Y: 1, Z: z},
		Max: vec.Vec3{X: x + 1, Y: 2, Z: z + w},
	}, nil
}

// BuildingZone у пустой комнаты нет зоны строительства
func (g *basicGenerator) BuildingZone(voxel.Reader) voxel.BoundingBox {
	return voxel.BoundingBox{}
}

// StartingPositions случайные свободные клетки пола, не более 10 попыток на агента.
// Если попытки кончились, агент пропускается.
func (g *basicGenerator) StartingPositions(voxel.Reader) []vec.Vec3 {
	positions := make([]vec.Vec3, 0, g.numAgents)

	for i := 0; i < g.numAgents; i++ {
		for attempt := 0; attempt < startPositionAttempts; attempt++ {
			pos := vec.Vec3{X: g.rng.Range(1, g.length-1), Y: 1, Z: g.rng.Range(1, g.width-1)}
			if !slices.Contains(positions, pos) {
				positions = append(positions, pos)
				break
			}
		}
	}

	if len(positions) < g.numAgents {
		g.log.Warn("Only %d starting positions for %d agents", len(positions), g.numAgents)
		g.metrics.degraded(g.archetype, DegradeStartPositions)
	}
	return positions
}

func (g *basicGenerator) ObjectSpawnPositions(voxel.Reader) []vec.Vec3 {
	return nil
}

// takeSpawns отдаёт первые n кандидатов, начиная с from; n ограничивается остатком
func takeSpawns(candidates []vec.Vec3, from, n int) []vec.Vec3 {
	from = min(max(from, 0), len(candidates))
	end := min(from+max(n, 0), len(candidates))
	return slices.Clone(candidates[from:end])
}
