package scene

import (
	"sync"

	"github.com/annel0/voxel-layout/internal/voxel"
)

// Recorder сцена в памяти: запоминает все добавленные объекты.
// Используется в CLI и тестах вместо настоящего движка.
type Recorder struct {
	mu         sync.Mutex
	cuboids    []Cuboid
	nextHandle voxel.ObjectHandle
}

// NewRecorder создаёт пустую сцену
func NewRecorder() *Recorder {
	return &Recorder{nextHandle: voxel.NoObject + 1}
}

func (r *Recorder) AddLayoutBox(c Cuboid) {
	r.add(c)
}

func (r *Recorder) AddMovableObject(c Cuboid) voxel.ObjectHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cuboids = append(r.cuboids, c)
	h := r.nextHandle
	r.nextHandle++
	return h
}

func (r *Recorder) AddExitPad(c Cuboid) {
	r.add(c)
}

func (r *Recorder) AddBuildingZone(c Cuboid) {
	r.add(c)
}

func (r *Recorder) add(c Cuboid) {
	r.mu.Lock()
	r.cuboids = append(r.cuboids, c)
	r.mu.Unlock()
}

// Cuboids копия добавленных объектов в порядке добавления
func (r *Recorder) Cuboids() []Cuboid {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Cuboid, len(r.cuboids))
	copy(out, r.cuboids)
	return out
}

// Count число объектов данного типа
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.cuboids {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset очищает сцену. Дескрипторы живут в пределах одного уровня
// и после сброса выдаются заново с первого.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cuboids = nil
	r.nextHandle = voxel.NoObject + 1
	r.mu.Unlock()
}
