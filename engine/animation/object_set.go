package animation

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-actor/engine/controller"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene_node"
	"github.com/Carmen-Shannon/oxy-actor/engine/skeleton"
)

// objectInfo is one attached object set.
type objectInfo struct {
	model        model.Model
	skeleton     skeleton.Instance
	controllers  []controller.Controller
	curveValues  map[string]float32
	attachments  []string
	activeLayers uint32
}

// SetCurveValue stores the output of the object's generic controllers.
func (o *objectInfo) SetCurveValue(name string, v float32) {
	o.curveValues[name] = v
}

// nonAccumController returns the bone controller driving root, if any.
func (o *objectInfo) nonAccumController(root *skeleton.Bone) controller.Controller {
	if root == nil {
		return nil
	}
	for _, ctrl := range o.controllers {
		if ctrl.Kind() == controller.KindBone && ctrl.BoneTarget().Bone() == root {
			return ctrl
		}
	}
	return nil
}

func (o *objectInfo) owns(ctrl controller.Controller) bool {
	if ctrl == nil {
		return false
	}
	for _, c := range o.controllers {
		if c == ctrl {
			return true
		}
	}
	return false
}

func (a *animation) Attach(node scene_node.Node, modelID string, baseOnly bool) (int, error) {
	if a.loader == nil {
		return -1, ErrNoLoader
	}
	m, err := a.loader.LoadObjects(modelID, baseOnly)
	if err != nil {
		return -1, fmt.Errorf("attach %q: %w", modelID, err)
	}
	return a.AttachModel(node, m), nil
}

func (a *animation) AttachModel(node scene_node.Node, m model.Model) int {
	if a.insert == nil {
		a.insert = node.CreateChild(node.Name() + "/insert")
	}

	obj := &objectInfo{
		model:       m,
		curveValues: make(map[string]float32),
	}

	if skel := m.Skeleton(); skel != nil {
		obj.skeleton = skeleton.NewInstance(skel)
		obj.skeleton.SetManuallyControlled(true)
		if a.baseObject == nil {
			a.baseObject = obj
		}
	}

	var bindTo skeleton.Instance
	if obj.skeleton != nil {
		bindTo = obj.skeleton
	} else if a.baseObject != nil {
		bindTo = a.baseObject.skeleton
	}

	channels := m.Channels()
	for i := range channels {
		ch := &channels[i]
		var bone *skeleton.Bone
		if bindTo != nil {
			bone = bindTo.Bone(ch.BoneName)
		}
		if bone == nil {
			a.logger.Printf("[Animation] %s: no bone %q for channel, skipping", m.Name(), ch.BoneName)
			continue
		}
		obj.controllers = append(obj.controllers, controller.NewBoneController(controller.NewBoneTarget(bone, ch), nil))
	}

	curves := m.Curves()
	for i := range curves {
		c := &curves[i]
		var src controller.ValueSource
		if c.Clock == model.ClockRealtime {
			src = a.clock
		}
		obj.controllers = append(obj.controllers, controller.NewGenericController(controller.NewGenericTarget(c, obj), src))
	}

	if obj.skeleton != nil {
		base := a.baseObject.skeleton
		if obj == a.baseObject {
			if len(m.TextKeys()) > 0 {
				a.accumRoot = a.insert
				a.nonAccumRoot = base.Bone(m.TextKeyRoot())
				if a.nonAccumRoot == nil {
					a.logger.Printf("[Animation] %s: text key bone %q not in skeleton", m.Name(), m.TextKeyRoot())
				}
			}
		} else {
			for _, ctrl := range obj.controllers {
				if ctrl.Kind() != controller.KindBone {
					continue
				}
				if b := base.Bone(ctrl.Name()); b != nil {
					ctrl.BoneTarget().SetBone(b)
				}
			}
		}
	}

	for _, ctrl := range obj.controllers {
		if ctrl.Source() == nil {
			ctrl.SetSource(a.layerValues[0])
		}
	}

	for _, r := range m.Renderables() {
		a.insert.Attach(r.Name)
		obj.attachments = append(obj.attachments, r.Name)
	}
	for _, p := range m.Particles() {
		a.insert.Attach(p.Name)
		obj.attachments = append(obj.attachments, p.Name)
	}

	a.objects = append(a.objects, obj)
	a.updateActiveControllers()
	return len(a.objects) - 1
}

func (a *animation) Detach(index int) error {
	if index < 0 || index >= len(a.objects) {
		return ErrObjectIndex
	}
	obj := a.objects[index]
	if obj == a.baseObject && len(a.objects) > 1 {
		return ErrBaseSkeletonInUse
	}

	for i := range a.layers {
		if a.layers[i].object == obj {
			a.clearLayer(i)
		}
	}
	if obj.owns(a.nonAccumCtrl) {
		a.nonAccumCtrl = nil
		a.velocity = 0
	}

	a.destroyObject(obj)
	a.objects = append(a.objects[:index], a.objects[index+1:]...)
	if obj == a.baseObject {
		a.baseObject = nil
		a.nonAccumRoot = nil
		a.accumRoot = nil
	}

	a.updateActiveControllers()
	return nil
}

func (a *animation) ObjectCount() int {
	return len(a.objects)
}

func (a *animation) Release() {
	for i := range a.layers {
		a.clearLayer(i)
	}
	for _, obj := range a.objects {
		a.destroyObject(obj)
	}
	a.objects = nil
	a.baseObject = nil
	a.nonAccumRoot = nil
	a.accumRoot = nil
	a.active = a.active[:0]

	if a.insert != nil {
		if parent := a.insert.Parent(); parent != nil {
			parent.RemoveChild(a.insert)
		}
		a.insert = nil
	}
}

func (a *animation) destroyObject(obj *objectInfo) {
	for _, name := range obj.attachments {
		a.insert.Detach(name)
	}
	obj.attachments = nil
	obj.controllers = nil
	obj.activeLayers = 0
}

func (a *animation) objectIndex(obj *objectInfo) int {
	for i, o := range a.objects {
		if o == obj {
			return i
		}
	}
	return -1
}
