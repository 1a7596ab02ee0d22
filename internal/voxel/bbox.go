package voxel

import (
	"fmt"

	"github.com/annel0/voxel-layout/internal/vec"
)

// BoundingBox прямоугольный параллелепипед, оба угла включительно
type BoundingBox struct {
	Min vec.Vec3 `json:"min"`
	Max vec.Vec3 `json:"max"`
}

// NewBoundingBox создаёт бокс 1x1x1 вокруг точки
func NewBoundingBox(c vec.Vec3) BoundingBox {
	return BoundingBox{Min: c, Max: c}
}

// AddPoint расширяет бокс так, чтобы он включал точку
func (b *BoundingBox) AddPoint(c vec.Vec3) {
	b.Min = vec.Min(b.Min, c)
	b.Max = vec.Max(b.Max, c)
}

// Contains проверяет попадание точки в бокс
func (b BoundingBox) Contains(c vec.Vec3) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X &&
		c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
		c.Z >= b.Min.Z && c.Z <= b.Max.Z
}

// Size количество вокселей по каждой оси
func (b BoundingBox) Size() vec.Vec3 {
	return b.Max.Sub(b.Min).Add(vec.Vec3{X: 1, Y: 1, Z: 1})
}

// Volume количество покрытых вокселей
func (b BoundingBox) Volume() int {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// Overlaps проверяет пересечение двух боксов
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// Each обходит все координаты бокса
func (b BoundingBox) Each(fn func(c vec.Vec3)) {
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				fn(vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
}

// IsDegenerate для регионов (выход, зона строительства): нулевая протяжённость
// по x или z означает, что регион отсутствует и не рисуется.
func (b BoundingBox) IsDegenerate() bool {
	return b.Max.X-b.Min.X <= 0 || b.Max.Z-b.Min.Z <= 0
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%s..%s]", b.Min, b.Max)
}
