package scene

import (
	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
)

// Builder сцена рендеринга/физики, в которую выгружается уровень
type Builder interface {
	AddLayoutBox(c Cuboid)
	// AddMovableObject возвращает дескриптор объекта для обратной ссылки из сетки
	AddMovableObject(c Cuboid) voxel.ObjectHandle
	AddExitPad(c Cuboid)
	AddBuildingZone(c Cuboid)
}

// Layout части уровня, которые нужно выгрузить в сцену
type Layout struct {
	Boxes        []voxel.BoundingBox
	Objects      []vec.Vec3
	ExitPad      voxel.BoundingBox
	BuildingZone voxel.BoundingBox
}

// Populate выгружает уровень в сцену. Каждый подвижный объект получает
// дескриптор, который записывается в сетку по позиции объекта.
// Возвращает дескрипторы в порядке Objects.
func Populate(b Builder, grid *voxel.Grid, l Layout) []voxel.ObjectHandle {
	log := logging.GetSceneLogger()

	for _, box := range l.Boxes {
		b.AddLayoutBox(LayoutBox(box))
	}

	handles := make([]voxel.ObjectHandle, 0, len(l.Objects))
	for _, pos := range l.Objects {
		h := b.AddMovableObject(MovableObject(pos))
		grid.AttachObject(pos, h)
		handles = append(handles, h)
	}

	if pad, ok := ExitPad(l.ExitPad); ok {
		b.AddExitPad(pad)
	}
	if zone, ok := BuildingZone(l.BuildingZone); ok {
		b.AddBuildingZone(zone)
	}

	log.Debug("Scene populated: %d boxes, %d objects", len(l.Boxes), len(handles))
	return handles
}
