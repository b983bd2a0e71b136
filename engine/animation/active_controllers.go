package animation

import (
	"github.com/Carmen-Shannon/oxy-actor/engine/controller"
	"github.com/Carmen-Shannon/oxy-actor/engine/skeleton"
)

// updateActiveControllers rebuilds the per-frame controller list: every generic controller,
// then the bone controllers of the object set armed on each layer, in layer order so that
// higher layers write shared bones last.
func (a *animation) updateActiveControllers() {
	a.active = a.active[:0]

	for _, obj := range a.objects {
		for _, ctrl := range obj.controllers {
			if ctrl.Kind() != controller.KindBone {
				a.active = append(a.active, ctrl)
			}
		}
	}

	seen := make(map[*objectInfo]bool, MaxLayers)
	for idx := range MaxLayers {
		for _, obj := range a.objects {
			if obj.activeLayers&(1<<idx) == 0 {
				continue
			}
			if !seen[obj] {
				seen[obj] = true
				for _, ctrl := range obj.controllers {
					if ctrl.Kind() == controller.KindBone {
						a.active = append(a.active, ctrl)
					}
				}
			}
			break
		}
	}
}

// publishSkeleton refreshes the base skeleton and poses every other skeleton instance from it.
func (a *animation) publishSkeleton() {
	if a.baseObject == nil {
		return
	}
	base := a.baseObject.skeleton
	base.UpdateDerived()
	for _, obj := range a.objects {
		if obj.skeleton == nil || obj == a.baseObject {
			continue
		}
		skeleton.Propagate(base, obj.skeleton)
	}
}
