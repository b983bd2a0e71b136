package scene

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-actor/engine/game_object"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
)

// Scene defines the interface for a collection of animated actors advanced once per tick.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// SetName sets the name of the scene.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Active returns whether the scene is advanced by the engine.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene is advanced by the engine.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// Renderer returns the renderer receiving the staged pose writes, or nil when headless.
	//
	// Returns:
	//   - renderer.Renderer: the renderer or nil
	Renderer() renderer.Renderer

	// SetRenderer attaches a renderer. Pose buffers of objects already in the scene are
	// initialized on it.
	//
	// Parameters:
	//   - r: the renderer, or nil to detach
	//
	// Returns:
	//   - error: the first buffer initialization error
	SetRenderer(r renderer.Renderer) error

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add registers an object. Objects with a zero ID are assigned the next free ID.
	// When a renderer is attached, the object's pose buffers are allocated on it.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	//   - error: a wrapped buffer initialization error
	Add(obj game_object.GameObject) (uint64, error)

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Objects returns a snapshot of the scene's objects ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Remove removes the object with the given ID, releasing its animation and pose buffers.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Clear removes and releases every object.
	Clear()

	// Update advances every enabled object by dt. Objects are advanced in parallel on the
	// scene's worker pool; each object is only ever touched by one worker per tick and the
	// call returns once all of them are done. The staged pose writes are then submitted to
	// the renderer in a single batch.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	Update(dt float32)

	// LastWriteCount returns the number of buffer writes collected by the last Update.
	//
	// Returns:
	//   - int: the write count
	LastWriteCount() int
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool
	logger *log.Logger

	r renderer.Renderer

	registry map[uint64]game_object.GameObject
	nextID   uint64
	pending  []game_object.GameObject

	// reused each tick to avoid per-frame allocations
	writePool  []bind_group_provider.BufferWrite
	updatePool []game_object.GameObject
	lastWrites int

	// workerPool manages a bounded set of reusable goroutines for the parallel
	// Update phase. Workers persist across ticks.
	workerPool worker.DynamicWorkerPool
	workers    int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given name and options.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		logger:   log.Default(),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
		workers:  max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Queue size of 256 accommodates typical actor counts with headroom.
	s.workerPool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)

	for _, obj := range s.pending {
		if _, err := s.Add(obj); err != nil {
			s.logger.Printf("[Scene] %s: %v", s.name, err)
		}
	}
	s.pending = nil
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
	if r == nil {
		return nil
	}
	for _, obj := range s.registry {
		if err := s.initBuffers(obj); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}
	if err := s.initBuffers(obj); err != nil {
		return obj.ID(), err
	}
	s.registry[obj.ID()] = obj
	return obj.ID(), nil
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	releaseObject(obj)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.registry {
		releaseObject(obj)
	}
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objs := s.updatePool[:0]
	for _, obj := range s.registry {
		if obj.Enabled() {
			objs = append(objs, obj)
		}
	}
	s.updatePool = objs

	// A WaitGroup provides per-tick barrier sync since pool.Wait() blocks until
	// workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for i, obj := range objs {
		wg.Add(1)
		s.workerPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(dt)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// coalesce every object's writes into one submission
	allWrites := s.writePool[:0]
	for _, obj := range objs {
		allWrites = append(allWrites, obj.StagedWriteData()...)
	}
	s.writePool = allWrites
	s.lastWrites = len(allWrites)

	if s.r != nil && len(allWrites) > 0 {
		s.r.WriteBuffers(allWrites)
	}
}

func (s *scene) LastWriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastWrites
}

// initBuffers allocates the object's pose buffers on the attached renderer.
// Caller must hold s.mu write lock.
func (s *scene) initBuffers(obj game_object.GameObject) error {
	provider := obj.PoseProvider()
	if s.r == nil || provider == nil {
		return nil
	}
	for binding, size := range obj.BufferSizes() {
		if err := s.r.InitBuffer(provider, binding, size); err != nil {
			return fmt.Errorf("object %d: %w", obj.ID(), err)
		}
	}
	return nil
}

func releaseObject(obj game_object.GameObject) {
	obj.Animation().Release()
	if p := obj.PoseProvider(); p != nil {
		p.Release()
	}
}
