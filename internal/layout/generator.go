package layout

import (
	"errors"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

var (
	// ErrExitPadDoesNotFit фатальное нарушение предусловия: площадка выхода не помещается по ширине
	ErrExitPadDoesNotFit = errors.New("exit pad does not fit into level width")
	// ErrUnsupportedArchetype запрошен неизвестный тип уровня
	ErrUnsupportedArchetype = errors.New("layout archetype not supported")
	// ErrNoActiveGenerator компонент не инициализирован
	ErrNoActiveGenerator = errors.New("no active layout generator")
	// ErrInvalidAgentCount количество агентов должно быть положительным
	ErrInvalidAgentCount = errors.New("number of agents must be positive")
)

// Максимальная ширина площадки выхода
const maxExitPadWidth = 3

// Dimensions размеры уровня: length = x, height = y, width = z
type Dimensions struct {
	Length int `json:"length" yaml:"length"`
	Height int `json:"height" yaml:"height"`
	Width  int `json:"width" yaml:"width"`
}

// Generator протокол генерации уровня: Init -> Generate -> запросы регионов.
// Параметры вычисляются в Init и больше не меняются.
type Generator interface {
	Init()
	Generate(grid *voxel.Grid)
	ExtractPrimitives(grid voxel.Iterable) []voxel.BoundingBox
	LevelExit(grid voxel.Reader) (voxel.BoundingBox, error)
	BuildingZone(grid voxel.Reader) voxel.BoundingBox
	StartingPositions(grid voxel.Reader) []vec.Vec3
	ObjectSpawnPositions(grid voxel.Reader) []vec.Vec3
	Dimensions() Dimensions
}

func exitPadWidth(numAgents int) int {
	return min(maxExitPadWidth, numAgents)
}
