package scene

import (
	"fmt"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind тип объекта сцены
type Kind int

const (
	KindLayout Kind = iota
	KindMovable
	KindExitPad
	KindBuildingZone
)

func (k Kind) String() string {
	switch k {
	case KindLayout:
		return "layout"
	case KindMovable:
		return "movable"
	case KindExitPad:
		return "exit_pad"
	case KindBuildingZone:
		return "building_zone"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Размер подвижного объекта (полуразмер куба)
const movableObjectSize = 0.39

// Cuboid прямоугольный параллелепипед в мировых координатах.
// Scale задаётся полуразмерами, как у единичного куба [-1, 1].
type Cuboid struct {
	Kind   Kind       `json:"kind"`
	Center mgl32.Vec3 `json:"center"`
	Scale  mgl32.Vec3 `json:"scale"`
}

// Min нижний угол
func (c Cuboid) Min() mgl32.Vec3 {
	return c.Center.Sub(c.Scale)
}

// Max верхний угол
func (c Cuboid) Max() mgl32.Vec3 {
	return c.Center.Add(c.Scale)
}

// Transform матрица модели: сначала масштаб, затем перенос
func (c Cuboid) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(c.Center.X(), c.Center.Y(), c.Center.Z()).
		Mul4(mgl32.Scale3D(c.Scale.X(), c.Scale.Y(), c.Scale.Z()))
}

func (c Cuboid) String() string {
	return fmt.Sprintf("%s{center=%v scale=%v}", c.Kind, c.Center, c.Scale)
}

// LayoutBox статический параллелепипед уровня. Воксель (x,y,z) занимает
// куб [x, x+1], поэтому бокс покрывает [min, max+1] по каждой оси.
func LayoutBox(b voxel.BoundingBox) Cuboid {
	return Cuboid{
		Kind: KindLayout,
		Center: mgl32.Vec3{
			float32(b.Min.X+b.Max.X)/2 + 0.5,
			float32(b.Min.Y+b.Max.Y)/2 + 0.5,
			float32(b.Min.Z+b.Max.Z)/2 + 0.5,
		},
		Scale: mgl32.Vec3{
			float32(b.Max.X-b.Min.X+1) / 2,
			float32(b.Max.Y-b.Min.Y+1) / 2,
			float32(b.Max.Z-b.Min.Z+1) / 2,
		},
	}
}

// MovableObject подвижный объект в центре вокселя
func MovableObject(pos vec.Vec3) Cuboid {
	return Cuboid{
		Kind:   KindMovable,
		Center: mgl32.Vec3{float32(pos.X) + 0.5, float32(pos.Y) + 0.5, float32(pos.Z) + 0.5},
		Scale:  mgl32.Vec3{movableObjectSize, movableObjectSize, movableObjectSize},
	}
}

// ExitPad тонкая плита площадки выхода. ok = false для вырожденного региона.
func ExitPad(region voxel.BoundingBox) (Cuboid, bool) {
	return flatRegion(KindExitPad, region, mgl32.Vec3{0.5, 0.025, 0.5}, 0.025)
}

// BuildingZone плита зоны строительства, чуть шире и выше площадки выхода
func BuildingZone(region voxel.BoundingBox) (Cuboid, bool) {
	return flatRegion(KindBuildingZone, region, mgl32.Vec3{0.55, 0.075, 0.55}, 0.055)
}

// flatRegion регион в формате max = min + размер, масштаб (dx, 1, dz)
func flatRegion(kind Kind, region voxel.BoundingBox, base mgl32.Vec3, lift float32) (Cuboid, bool) {
	if region.IsDegenerate() {
		return Cuboid{}, false
	}

	dx := float32(region.Max.X - region.Min.X)
	dz := float32(region.Max.Z - region.Min.Z)

	return Cuboid{
		Kind: kind,
		Center: mgl32.Vec3{
			float32(region.Min.X) + dx/2,
			float32(region.Min.Y) + lift,
			float32(region.Min.Z) + dz/2,
		},
		Scale: mgl32.Vec3{base.X() * dx, base.Y(), base.Z() * dz},
	}, true
}
