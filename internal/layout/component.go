package layout

import (
	"fmt"

	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

// Component выбирает генератор по типу уровня и делегирует ему все вызовы.
// Одновременно активен ровно один генератор; он заменяется целиком при каждом Init.
type Component struct {
	rng     *rng.Sequencer
	log     *logging.Logger
	metrics *Metrics

	archetype Archetype
	generator Generator
}

// Option настройка компонента
type Option func(*Component)

// WithMetrics подключает Prometheus-метрики
func WithMetrics(m *Metrics) Option {
	return func(c *Component) {
		c.metrics = m
	}
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(c *Component) {
		c.log = l
	}
}

// NewComponent создаёт компонент раскладки поверх общей последовательности случайных чисел
func NewComponent(seq *rng.Sequencer, opts ...Option) *Component {
	c := &Component{
		rng: seq,
		log: logging.GetLayoutLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init создаёт генератор для типа уровня и выбирает его параметры.
// Для неподдерживаемого типа активного генератора не остаётся.
func (c *Component) Init(numAgents int, archetype Archetype) error {
	c.generator = nil

	if numAgents <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAgentCount, numAgents)
	}

	d := deps{rng: c.rng, log: c.log, metrics: c.metrics}

	switch archetype {
	case Empty:
		c.generator = newBasicGenerator(numAgents, d)
	case Walls:
		c.generator = newWallsGenerator(numAgents, d)
	case Cave:
		c.generator = newCaveGenerator(numAgents, d)
	case Towers:
		c.generator = newTowerGenerator(numAgents, d)
	default:
		c.log.Error("Layout type not supported %d", int(archetype))
		return fmt.Errorf("%w: %d", ErrUnsupportedArchetype, int(archetype))
	}

	c.archetype = archetype
	c.generator.Init()

	dims := c.generator.Dimensions()
	c.log.Debug("Layout %s initialised: length=%d height=%d width=%d agents=%d",
		archetype, dims.Length, dims.Height, dims.Width, numAgents)
	return nil
}

// Archetype тип активного генератора
func (c *Component) Archetype() Archetype {
	return c.archetype
}

// Active сообщает, есть ли активный генератор
func (c *Component) Active() bool {
	return c.generator != nil
}

// Dimensions размеры уровня активного генератора
func (c *Component) Dimensions() (Dimensions, error) {
	if c.generator == nil {
		return Dimensions{}, ErrNoActiveGenerator
	}
	return c.generator.Dimensions(), nil
}

// Generate заполняет сетку
func (c *Component) Generate(grid *voxel.Grid) error {
	if c.generator == nil {
		return ErrNoActiveGenerator
	}
	c.generator.Generate(grid)
	c.metrics.observeGeneration(c.archetype, grid.SolidCount())
	return nil
}

// ExtractPrimitives сливает воксели сетки в параллелепипеды
func (c *Component) ExtractPrimitives(grid voxel.Iterable) ([]voxel.BoundingBox, error) {
	if c.generator == nil {
		return nil, ErrNoActiveGenerator
	}
	boxes := c.generator.ExtractPrimitives(grid)

	stats := Stats(boxes)
	c.metrics.observePrimitives(stats)
	c.log.Info("Env has %d layout drawables (%d voxels, x%.1f)", stats.Boxes, stats.Voxels, stats.Ratio())
	return boxes, nil
}

// LevelExit площадка выхода; вырожденный бокс означает отсутствие выхода
func (c *Component) LevelExit(grid voxel.Reader) (voxel.BoundingBox, error) {
	if c.generator == nil {
		return voxel.BoundingBox{}, ErrNoActiveGenerator
	}
	return c.generator.LevelExit(grid)
}

// BuildingZone зона строительства; вырожденный бокс означает отсутствие зоны
func (c *Component) BuildingZone(grid voxel.Reader) (voxel.BoundingBox, error) {
	if c.generator == nil {
		return voxel.BoundingBox{}, ErrNoActiveGenerator
	}
	return c.generator.BuildingZone(grid), nil
}

// StartingPositions позиции агентов; их может быть меньше, чем агентов
func (c *Component) StartingPositions(grid voxel.Reader) ([]vec.Vec3, error) {
	if c.generator == nil {
		return nil, ErrNoActiveGenerator
	}
	return c.generator.StartingPositions(grid), nil
}

// ObjectSpawnPositions позиции подвижных объектов
func (c *Component) ObjectSpawnPositions(grid voxel.Reader) ([]vec.Vec3, error) {
	if c.generator == nil {
		return nil, ErrNoActiveGenerator
	}
	return c.generator.ObjectSpawnPositions(grid), nil
}
