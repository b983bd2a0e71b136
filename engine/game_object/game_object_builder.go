package game_object

import (
	"github.com/Carmen-Shannon/oxy-actor/engine/animation"
	"github.com/Carmen-Shannon/oxy-actor/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-actor/engine/scene_node"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
		if obj.anim != nil {
			obj.anim.UpdateEntity(id)
		}
	}
}

// WithEnabled sets whether the GameObject is advanced by its scene.
//
// Parameters:
//   - enabled: true to advance the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithNode sets the scene node the GameObject's animation attaches under.
//
// Parameters:
//   - node: the scene node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the node
func WithNode(node scene_node.Node) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.node = node
	}
}

// WithAnimation sets the Animation driven by the GameObject. Its entity reference is
// rebound to the object's ID.
//
// Parameters:
//   - anim: the animation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the animation
func WithAnimation(anim animation.Animation) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.anim = anim
		anim.UpdateEntity(obj.id)
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - r: the rotation around X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(r [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r
	}
}

// WithPoseProvider sets the provider that receives the staged pose writes. The provider's
// InstanceBinding receives a GPUActorData and its PoseBinding the skinning palette.
//
// Parameters:
//   - provider: the provider
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the pose provider
func WithPoseProvider(provider bind_group_provider.BindGroupProvider) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.poseProvider = provider
	}
}
