package episode

import (
	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

// Level снимок сгенерированного уровня после сброса эпизода.
// Не меняется после возврата из Reset.
type Level struct {
	EpisodeID string            `json:"episode_id"`
	Episode   int               `json:"episode"`
	Seed      int               `json:"seed"`
	Archetype layout.Archetype  `json:"archetype"`
	Dims      layout.Dimensions `json:"dimensions"`

	Primitives     []voxel.BoundingBox `json:"primitives"`
	ExitPad        voxel.BoundingBox   `json:"exit_pad"`
	BuildingZone   voxel.BoundingBox   `json:"building_zone"`
	StartPositions []vec.Vec3          `json:"start_positions"`
	ObjectSpawns   []vec.Vec3          `json:"object_spawns"`

	SolidVoxels int    `json:"solid_voxels"`
	Digest      uint64 `json:"digest"`
}

// HasExit сообщает, есть ли у уровня площадка выхода
func (l *Level) HasExit() bool {
	return !l.ExitPad.IsDegenerate()
}

// HasBuildingZone сообщает, есть ли у уровня зона строительства
func (l *Level) HasBuildingZone() bool {
	return !l.BuildingZone.IsDegenerate()
}

// Stats статистика слияния вокселей
func (l *Level) Stats() layout.PrimitiveStats {
	return layout.Stats(l.Primitives)
}
