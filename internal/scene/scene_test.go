package scene

import (
	"testing"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/annel0/voxel-layout/internal/voxel"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutBox_CoversVoxels(t *testing.T) {
	box := voxel.BoundingBox{Min: vec.Vec3{X: 0, Y: 0, Z: 2}, Max: vec.Vec3{X: 9, Y: 0, Z: 4}}
	c := LayoutBox(box)

	assert.Equal(t, KindLayout, c.Kind)
	assert.Equal(t, mgl32.Vec3{5, 0.5, 3.5}, c.Center)
	assert.Equal(t, mgl32.Vec3{5, 0.5, 1.5}, c.Scale)

	// углы куба совпадают с границами вокселей
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, c.Min())
	assert.Equal(t, mgl32.Vec3{10, 1, 5}, c.Max())
}

func TestLayoutBox_SingleVoxelTransform(t *testing.T) {
	c := LayoutBox(voxel.NewBoundingBox(vec.Vec3{X: 3, Y: 1, Z: 2}))

	corner := c.Transform().Mul4x1(mgl32.Vec4{-1, -1, -1, 1})
	assert.True(t, corner.Vec3().ApproxEqual(mgl32.Vec3{3, 1, 2}), "got %v", corner)

	corner = c.Transform().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.True(t, corner.Vec3().ApproxEqual(mgl32.Vec3{4, 2, 3}), "got %v", corner)
}

func TestMovableObject(t *testing.T) {
	c := MovableObject(vec.Vec3{X: 4, Y: 1, Z: 7})
	assert.Equal(t, KindMovable, c.Kind)
	assert.Equal(t, mgl32.Vec3{4.5, 1.5, 7.5}, c.Center)
	assert.True(t, c.Scale.ApproxEqual(mgl32.Vec3{0.39, 0.39, 0.39}))
}

func TestExitPadAndZone(t *testing.T) {
	region := voxel.BoundingBox{Min: vec.Vec3{X: 10, Y: 1, Z: 3}, Max: vec.Vec3{X: 11, Y: 2, Z: 6}}

	pad, ok := ExitPad(region)
	require.True(t, ok)
	assert.True(t, pad.Center.ApproxEqualThreshold(mgl32.Vec3{10.5, 1.025, 4.5}, 1e-5), "got %v", pad.Center)
	assert.True(t, pad.Scale.ApproxEqualThreshold(mgl32.Vec3{0.5, 0.025, 1.5}, 1e-5), "got %v", pad.Scale)

	zone, ok := BuildingZone(region)
	require.True(t, ok)
	assert.Equal(t, KindBuildingZone, zone.Kind)
	assert.True(t, zone.Scale.ApproxEqualThreshold(mgl32.Vec3{0.55, 0.075, 1.65}, 1e-5), "got %v", zone.Scale)

	_, ok = ExitPad(voxel.BoundingBox{})
	assert.False(t, ok, "нулевой регион не выгружается")
	_, ok = BuildingZone(voxel.BoundingBox{Min: vec.Vec3{X: 1, Y: 1, Z: 1}, Max: vec.Vec3{X: 4, Y: 1, Z: 1}})
	assert.False(t, ok, "нулевая ширина по z")
}

func TestPopulate_AttachesHandles(t *testing.T) {
	grid := voxel.NewGrid()
	grid.SetSolid(vec.Vec3{X: 0, Y: 0, Z: 0})
	grid.SetSolid(vec.Vec3{X: 1, Y: 0, Z: 0})

	objects := []vec.Vec3{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 1}}
	rec := NewRecorder()

	handles := Populate(rec, grid, Layout{
		Boxes:   []voxel.BoundingBox{{Min: vec.Vec3{}, Max: vec.Vec3{X: 1}}},
		Objects: objects,
		ExitPad: voxel.BoundingBox{Min: vec.Vec3{X: 1, Y: 1, Z: 1}, Max: vec.Vec3{X: 2, Y: 2, Z: 2}},
	})

	require.Len(t, handles, 2)
	assert.NotEqual(t, handles[0], handles[1])

	for i, pos := range objects {
		state, ok := grid.Get(pos)
		require.True(t, ok, "объект %s должен быть записан в сетку", pos)
		assert.Equal(t, handles[i], state.Object)
		assert.NotEqual(t, voxel.NoObject, state.Object)
		assert.False(t, state.Solid)
	}

	assert.Equal(t, 1, rec.Count(KindLayout))
	assert.Equal(t, 2, rec.Count(KindMovable))
	assert.Equal(t, 1, rec.Count(KindExitPad))
	assert.Equal(t, 0, rec.Count(KindBuildingZone))
	assert.Len(t, rec.Cuboids(), 4)

	rec.Reset()
	assert.Empty(t, rec.Cuboids())
	next := rec.AddMovableObject(MovableObject(vec.Vec3{}))
	assert.Equal(t, handles[0], next, "после сброса дескрипторы выдаются с первого")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "exit_pad", KindExitPad.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
