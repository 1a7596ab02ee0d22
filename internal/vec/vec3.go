package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется как координата вокселя: x - длина, y - высота, z - ширина.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Направления вдоль осей в порядке обхода: x-, x+, y-, y+, z-, z+
var Directions = [6]Vec3{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Less задаёт лексикографический порядок (x, затем y, затем z)
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// Min возвращает покомпонентный минимум
func Min(a, b Vec3) Vec3 {
	return Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

// Max возвращает покомпонентный максимум
func Max(a, b Vec3) Vec3 {
	return Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}
