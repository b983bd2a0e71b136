package animation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/controller"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// rootTranslation samples the non-accumulation controller at t, masked by the accumulation flags.
func (a *animation) rootTranslation(ctrl controller.Controller, t float32) [3]float32 {
	return common.Vec3Mul(ctrl.BoneTarget().Translation(t), a.accumulate)
}

// updatePosition extracts the root displacement since the last call at the layer-0 cursor
// and moves the accumulation root back by the accumulated amount.
func (a *animation) updatePosition() [3]float32 {
	if a.nonAccumRoot == nil || a.nonAccumCtrl == nil {
		return [3]float32{}
	}

	posdiff := common.Vec3Sub(a.rootTranslation(a.nonAccumCtrl, a.layers[0].time), a.lastPosition)
	a.lastPosition = common.Vec3Add(a.lastPosition, posdiff)
	if a.accumRoot != nil {
		a.accumRoot.SetPosition(common.Vec3Negate(a.lastPosition))
	}
	return posdiff
}

// calcVelocity returns the average root speed between the group's start (or loop start)
// and its first stop (or loop stop) key, or 0 if the window is empty.
func (a *animation) calcVelocity(keys model.TextKeyMap, ctrl controller.Controller, group string) float32 {
	start := group + ": start"
	loopStart := group + ": loop start"
	loopStop := group + ": loop stop"
	stop := group + ": stop"

	startTime := float32(math.MaxFloat32)
	var stopTime float32
	for _, k := range keys {
		if k.Label == start || k.Label == loopStart {
			startTime = k.Time
		} else if k.Label == loopStop || k.Label == stop {
			stopTime = k.Time
			break
		}
	}

	if stopTime <= startTime {
		return 0
	}
	target := ctrl.BoneTarget()
	return common.Vec3Distance(target.Translation(startTime), target.Translation(stopTime)) / (stopTime - startTime)
}
