package layout

import (
	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/zyedidia/generic/mapset"
)

// PrimitiveStats сводка по слиянию вокселей
type PrimitiveStats struct {
	Voxels int
	Boxes  int
}

// Ratio во сколько раз уменьшилось число объектов
func (s PrimitiveStats) Ratio() float64 {
	if s.Boxes == 0 {
		return 0
	}
	return float64(s.Voxels) / float64(s.Boxes)
}

// Stats считает сводку для набора боксов
func Stats(boxes []voxel.BoundingBox) PrimitiveStats {
	s := PrimitiveStats{Boxes: len(boxes)}
	for _, b := range boxes {
		s.Voxels += b.Volume()
	}
	return s
}

// ExtractPrimitives жадно сливает твёрдые воксели в параллелепипеды.
// Каждый непосещённый твёрдый воксель (в порядке обхода сетки) становится
// зародышем бокса 1x1x1, который растёт по направлениям x-, x+, y-, y+, z-, z+.
// В каждом направлении рост идёт слоями до упора: слой принимается, только если
// все его ячейки существуют, твёрдые и ещё не посещены.
// Результат - разбиение множества твёрдых вокселей без пересечений; минимальность не гарантируется.
func ExtractPrimitives(grid voxel.Iterable) []voxel.BoundingBox {
	visited := mapset.New[vec.Vec3]()

	var boxes []voxel.BoundingBox
	var layer []vec.Vec3

	grid.Each(func(c vec.Vec3, s voxel.State) {
		if !s.Solid || visited.Has(c) {
			return
		}

		visited.Put(c)
		bbox := voxel.NewBoundingBox(c)

		for _, d := range vec.Directions {
			for {
				var ok bool
				layer, ok = growthLayer(grid, visited, bbox, d, layer[:0])
				if !ok {
					break
				}

				for _, lc := range layer {
					visited.Put(lc)
					bbox.AddPoint(lc)
				}
			}
		}

		// бокс целиком заполнен твёрдыми вокселями
		boxes = append(boxes, bbox)
	})

	return boxes
}

// growthLayer собирает слой, прилегающий к боксу в направлении d.
// Возвращает false, если хотя бы одна ячейка слоя не годится.
func growthLayer(grid voxel.Reader, visited mapset.Set[vec.Vec3], b voxel.BoundingBox, d vec.Vec3, buf []vec.Vec3) ([]vec.Vec3, bool) {
	x0, x1 := layerRange(b.Min.X, b.Max.X, d.X)
	y0, y1 := layerRange(b.Min.Y, b.Max.Y, d.Y)
	z0, z1 := layerRange(b.Min.Z, b.Max.Z, d.Z)

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				c := vec.Vec3{X: x, Y: y, Z: z}
				s, ok := grid.Get(c)
				if !ok || !s.Solid || visited.Has(c) {
					return buf, false
				}
				buf = append(buf, c)
			}
		}
	}
	return buf, true
}

func layerRange(lo, hi, direction int) (int, int) {
	switch direction {
	case 1:
		return hi + 1, hi + 1
	case -1:
		return lo - 1, lo - 1
	default:
		return lo, hi
	}
}
