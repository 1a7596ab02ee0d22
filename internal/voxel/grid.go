package voxel

import (
	"encoding/binary"
	"sort"

	"github.com/annel0/voxel-layout/internal/vec"
	"github.com/cespare/xxhash/v2"
)

// ObjectHandle непрозрачный идентификатор подвижного объекта, которым владеет
// слой рендера/физики. Сетка хранит его только как обратную ссылку.
type ObjectHandle uint64

// NoObject означает отсутствие привязанного объекта
const NoObject ObjectHandle = 0

// State состояние вокселя
type State struct {
	Solid  bool
	Object ObjectHandle
}

// Reader даёт доступ к сетке только на чтение
type Reader interface {
	Get(c vec.Vec3) (State, bool)
}

// Iterable сетка, по которой можно пройти
type Iterable interface {
	Reader
	Each(fn func(c vec.Vec3, s State))
}

// Grid разреженная воксельная сетка. Хранятся только явно установленные ячейки.
// Порядок обхода совпадает с порядком первой установки ячеек, поэтому
// одинаковая последовательность Set даёт одинаковый обход.
type Grid struct {
	cells map[vec.Vec3]State
	order []vec.Vec3
}

// NewGrid создаёт пустую сетку
func NewGrid() *Grid {
	return &Grid{
		cells: make(map[vec.Vec3]State),
	}
}

// Set вставляет или перезаписывает состояние ячейки
func (g *Grid) Set(c vec.Vec3, s State) {
	if _, exists := g.cells[c]; !exists {
		g.order = append(g.order, c)
	}
	g.cells[c] = s
}

// SetSolid помечает ячейку твёрдой
func (g *Grid) SetSolid(c vec.Vec3) {
	g.Set(c, State{Solid: true})
}

// Get возвращает состояние ячейки; false, если ячейка никогда не устанавливалась
func (g *Grid) Get(c vec.Vec3) (State, bool) {
	s, ok := g.cells[c]
	return s, ok
}

// IsSolid сообщает, существует ли ячейка и твёрдая ли она
func (g *Grid) IsSolid(c vec.Vec3) bool {
	s, ok := g.cells[c]
	return ok && s.Solid
}

// AttachObject записывает обратную ссылку на объект, сохраняя твёрдость ячейки
func (g *Grid) AttachObject(c vec.Vec3, h ObjectHandle) {
	s := g.cells[c]
	s.Object = h
	g.Set(c, s)
}

// Each обходит все ячейки в порядке вставки
func (g *Grid) Each(fn func(c vec.Vec3, s State)) {
	for _, c := range g.order {
		fn(c, g.cells[c])
	}
}

// Len количество хранимых ячеек
func (g *Grid) Len() int {
	return len(g.cells)
}

// SolidCount количество твёрдых ячеек
func (g *Grid) SolidCount() int {
	n := 0
	for _, s := range g.cells {
		if s.Solid {
			n++
		}
	}
	return n
}

// Clear удаляет все ячейки (сброс уровня)
func (g *Grid) Clear() {
	g.cells = make(map[vec.Vec3]State)
	g.order = g.order[:0]
}

// Digest возвращает хеш содержимого сетки, не зависящий от порядка вставки
func (g *Grid) Digest() uint64 {
	keys := make([]vec.Vec3, 0, len(g.cells))
	for c := range g.cells {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	h := xxhash.New()
	var buf [8*4 + 1]byte
	for _, c := range keys {
		s := g.cells[c]
		binary.LittleEndian.PutUint64(buf[0:], uint64(int64(c.X)))
		binary.LittleEndian.PutUint64(buf[8:], uint64(int64(c.Y)))
		binary.LittleEndian.PutUint64(buf[16:], uint64(int64(c.Z)))
		binary.LittleEndian.PutUint64(buf[24:], uint64(s.Object))
		buf[32] = 0
		if s.Solid {
			buf[32] = 1
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
