package episode

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/rng"
	"github.com/annel0/voxel-layout/internal/scene"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Верхняя граница рабочего сида, выбираемого при каждом сбросе
const maxEpisodeSeed = 10000

const tracerName = "github.com/annel0/voxel-layout/internal/episode"

// Options параметры окружения
type Options struct {
	NumAgents int
	Archetype layout.Archetype
	Seed      int64

	// Builder сцена для выгрузки уровня; по умолчанию scene.Recorder
	Builder scene.Builder
	// Registerer для метрик; nil - метрики не регистрируются.
	// Один регистратор обслуживает одно окружение.
	Registerer prometheus.Registerer
	Logger     *logging.Logger
}

// Env владеет последовательностью случайных чисел, сеткой и компонентом раскладки.
// Не потокобезопасен: сбросы выполняются последовательно.
type Env struct {
	numAgents int
	archetype layout.Archetype

	rng     *rng.Sequencer
	grid    *voxel.Grid
	layout  *layout.Component
	builder scene.Builder

	metrics *Metrics
	log     *logging.Logger
	tracer  trace.Tracer

	episodes int
}

// resetter сцена, которую можно очистить перед новым уровнем
type resetter interface {
	Reset()
}

// New создаёт окружение. Параметры проверяются сразу, уровень строится в Reset.
func New(opts Options) (*Env, error) {
	if opts.NumAgents <= 0 {
		return nil, fmt.Errorf("%w: %d", layout.ErrInvalidAgentCount, opts.NumAgents)
	}
	if !opts.Archetype.Valid() {
		return nil, fmt.Errorf("%w: %d", layout.ErrUnsupportedArchetype, int(opts.Archetype))
	}

	log := opts.Logger
	if log == nil {
		log = logging.GetEpisodeLogger()
	}
	builder := opts.Builder
	if builder == nil {
		builder = scene.NewRecorder()
	}

	seq := rng.New(opts.Seed)
	lm := layout.NewMetrics(opts.Registerer)

	return &Env{
		numAgents: opts.NumAgents,
		archetype: opts.Archetype,
		rng:       seq,
		grid:      voxel.NewGrid(),
		layout:    layout.NewComponent(seq, layout.WithLogger(log), layout.WithMetrics(lm)),
		builder:   builder,
		metrics:   NewMetrics(opts.Registerer),
		log:       log,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Seed пересевает верхний поток. Рабочие сиды следующих сбросов берутся из него.
func (e *Env) Seed(v int64) {
	e.rng.Seed(v)
}

// Grid текущая сетка (только чтение)
func (e *Env) Grid() voxel.Reader {
	return e.grid
}

// Episodes число успешных сбросов
func (e *Env) Episodes() int {
	return e.episodes
}

// Reset строит новый уровень. Рабочий сид выбирается из верхнего потока,
// после чего весь уровень определяется только им.
func (e *Env) Reset(ctx context.Context) (*Level, error) {
	// отменённый сброс не должен сдвигать цепочку сидов
	if err := ctx.Err(); err != nil {
		e.metrics.failed()
		return nil, err
	}

	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "episode.Reset")
	defer span.End()

	seed := e.rng.Range(0, maxEpisodeSeed)
	e.rng.Seed(int64(seed))
	e.log.Info("Using seed %d", seed)

	level, err := e.build(ctx, seed)
	e.metrics.observeReset(time.Since(start).Seconds(), seed, err)

	span.SetAttributes(
		attribute.Int("episode.seed", seed),
		attribute.String("layout.archetype", e.archetype.String()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Error("Episode reset failed (seed %d): %v", seed, err)
		return nil, err
	}

	level.EpisodeID = episodeID(span)
	level.Episode = e.episodes
	e.episodes++

	span.SetAttributes(
		attribute.String("episode.id", level.EpisodeID),
		attribute.Int("layout.primitives", len(level.Primitives)),
	)
	e.log.Debug("Episode %d ready: id=%s digest=%x", level.Episode, level.EpisodeID, level.Digest)
	return level, nil
}

func (e *Env) build(ctx context.Context, seed int) (*Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.grid.Clear()
	if r, ok := e.builder.(resetter); ok {
		r.Reset()
	}

	if err := e.layout.Init(e.numAgents, e.archetype); err != nil {
		return nil, fmt.Errorf("init layout: %w", err)
	}
	if err := e.layout.Generate(e.grid); err != nil {
		return nil, fmt.Errorf("generate layout: %w", err)
	}

	boxes, err := e.layout.ExtractPrimitives(e.grid)
	if err != nil {
		return nil, fmt.Errorf("extract primitives: %w", err)
	}
	objects, err := e.layout.ObjectSpawnPositions(e.grid)
	if err != nil {
		return nil, fmt.Errorf("object spawns: %w", err)
	}
	exit, err := e.layout.LevelExit(e.grid)
	if err != nil {
		return nil, fmt.Errorf("level exit: %w", err)
	}
	zone, err := e.layout.BuildingZone(e.grid)
	if err != nil {
		return nil, fmt.Errorf("building zone: %w", err)
	}

	scene.Populate(e.builder, e.grid, scene.Layout{
		Boxes:        boxes,
		Objects:      objects,
		ExitPad:      exit,
		BuildingZone: zone,
	})

	starts, err := e.layout.StartingPositions(e.grid)
	if err != nil {
		return nil, fmt.Errorf("starting positions: %w", err)
	}
	dims, err := e.layout.Dimensions()
	if err != nil {
		return nil, err
	}

	return &Level{
		Seed:           seed,
		Archetype:      e.archetype,
		Dims:           dims,
		Primitives:     boxes,
		ExitPad:        exit,
		BuildingZone:   zone,
		StartPositions: starts,
		ObjectSpawns:   objects,
		SolidVoxels:    e.grid.SolidCount(),
		Digest:         e.grid.Digest(),
	}, nil
}

// episodeID берёт trace-id активного спана, иначе генерирует UUID
func episodeID(span trace.Span) string {
	if sc := span.SpanContext(); sc.IsValid() {
		return sc.TraceID().String()
	}
	return uuid.NewString()
}
