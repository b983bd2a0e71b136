package animation

import (
	"math/bits"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/controller"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// layer is the playback state of one animation slot. Key positions are indices into keys,
// a snapshot of the owning object set's text keys, so they stay valid until the layer is
// re-armed or the object set is detached (which clears the layer first).
type layer struct {
	group  string
	keys   model.TextKeyMap
	object *objectInfo

	time float32

	startKey, loopStartKey, nextKey, stopKey int

	playing, looping bool
}

func (l *layer) reset() {
	*l = layer{startKey: -1, loopStartKey: -1, nextKey: -1, stopKey: -1}
}

// layerValue is the time source shared by every controller bound to one layer. It reports
// the cursor of its layer, or of the nearest lower layer that is playing a group.
type layerValue struct {
	anim  *animation
	index int
}

func (v *layerValue) Value() float32 {
	idx := v.index
	for idx > 0 && v.anim.layers[idx].group == "" {
		idx--
	}
	if v.anim.layers[idx].group != "" {
		return v.anim.layers[idx].time
	}
	return 0
}

// realtimeValue is the entity's own clock, advanced by the unscaled frame time.
type realtimeValue struct {
	elapsed float32
}

func (v *realtimeValue) Value() float32 {
	return v.elapsed
}

var (
	_ controller.ValueSource = &layerValue{}
	_ controller.ValueSource = &realtimeValue{}
)

func (a *animation) clearLayer(idx int) {
	for _, obj := range a.objects {
		if obj.activeLayers&(1<<idx) == 0 {
			continue
		}
		obj.activeLayers &^= 1 << idx
		a.bindLayerSource(obj, obj.lowestLayer())
	}
	a.layers[idx].reset()
	if idx == 0 {
		a.nonAccumCtrl = nil
		a.velocity = 0
	}
}

// seek positions layer idx on the group's start and stop keys. It leaves the layer
// untouched and returns false when either key is missing or they coincide.
func (a *animation) seek(idx int, keys model.TextKeyMap, nonAccum controller.Controller, group, start, stop string) bool {
	startKey := keys.Find(group+": "+start, 0)
	if startKey == len(keys) && start == "loop start" {
		startKey = keys.Find(group+": start", 0)
	}
	if startKey == len(keys) {
		return false
	}

	stopKey := keys.Find(group+": "+stop, startKey)
	if stopKey == len(keys) || stopKey == startKey {
		return false
	}

	l := &a.layers[idx]
	l.startKey = startKey
	l.loopStartKey = startKey
	l.stopKey = stopKey
	l.nextKey = startKey + 1
	l.time = keys[startKey].Time

	if idx == 0 && nonAccum != nil {
		a.lastPosition = a.rootTranslation(nonAccum, l.time)
	}
	return true
}

// loop rewinds layer idx to its loop start key.
func (a *animation) loop(idx int) {
	l := &a.layers[idx]
	l.time = l.keys[l.loopStartKey].Time
	l.nextKey = l.loopStartKey + 1
	l.playing = true
	if idx == 0 && a.nonAccumCtrl != nil {
		a.lastPosition = a.rootTranslation(a.nonAccumCtrl, l.time)
	}
}

func (a *animation) Play(group, start, stop string, loop bool, idx int) bool {
	if idx < 0 || idx >= MaxLayers {
		a.logger.Printf("[Animation] layer %d out of range [0, %d)", idx, MaxLayers)
		return false
	}

	a.clearLayer(idx)
	if group == "" {
		a.updateActiveControllers()
		return true
	}

	found := false
	// last attached object set has priority
	for i := len(a.objects) - 1; i >= 0; i-- {
		obj := a.objects[i]
		keys := obj.model.TextKeys()
		if len(keys) == 0 {
			continue
		}

		var nonAccum controller.Controller
		if idx == 0 {
			nonAccum = obj.nonAccumController(a.nonAccumRoot)
		}

		if !found {
			if !a.seek(idx, keys, nonAccum, group, start, stop) {
				continue
			}
			l := &a.layers[idx]
			l.group = group
			l.keys = keys
			l.object = obj
			l.looping = loop
			l.playing = true

			if idx == 0 {
				a.nonAccumCtrl = nonAccum
				a.velocity = 0
			}

			obj.activeLayers |= 1 << idx
			a.bindLayerSource(obj, idx)
			found = true
		}

		if nonAccum == nil {
			break
		}
		a.velocity = a.calcVelocity(keys, nonAccum, group)
		if a.velocity > 0 {
			break
		}
	}
	if !found {
		a.logger.Printf("[Animation] failed to find animation %s (%s -> %s)", group, start, stop)
	}

	a.updateActiveControllers()
	return found
}

// lowestLayer returns the lowest layer obj is armed on, or 0 when it is armed on none.
func (o *objectInfo) lowestLayer() int {
	if o.activeLayers == 0 {
		return 0
	}
	return bits.TrailingZeros32(o.activeLayers)
}

// bindLayerSource moves every layer-driven controller of obj onto layer idx's time source.
func (a *animation) bindLayerSource(obj *objectInfo, idx int) {
	for _, ctrl := range obj.controllers {
		if _, ok := ctrl.Source().(*layerValue); ok {
			ctrl.SetSource(a.layerValues[idx])
		}
	}
}

func (a *animation) Advance(dt float32) [3]float32 {
	var movement [3]float32

	a.clock.elapsed += dt
	dt *= a.speedMult

	for idx := range a.layers {
		l := &a.layers[idx]
		if l.group == "" {
			continue
		}

		timepassed := dt
		for l.playing {
			target := l.time + timepassed
			if l.nextKey >= len(l.keys) || l.keys[l.nextKey].Time > target {
				l.time = target
				if idx == 0 {
					movement = common.Vec3Add(movement, a.updatePosition())
				}
				break
			}

			key := l.nextKey
			l.nextKey++
			l.time = l.keys[key].Time
			if idx == 0 {
				movement = common.Vec3Add(movement, a.updatePosition())
			}

			l.playing = key != l.stopKey
			timepassed = target - l.time

			if !a.handleTextKey(idx, key) {
				break
			}
		}
	}

	for _, ctrl := range a.active {
		ctrl.Update()
	}

	a.publishSkeleton()
	return movement
}
