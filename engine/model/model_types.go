package model

import (
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-actor/common"
)

// --- Transform & Skeleton Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a Transform with no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: common.QuatIdentity(),
		Scale:    [3]float32{1, 1, 1},
	}
}

// Bone represents a single bone in a skeleton hierarchy.
type Bone struct {
	// Name is the bone's identifier (for debugging and animation targeting).
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// InverseBindMatrix transforms from model space to bone space at bind pose.
	// This is the inverse of the bone's world transform when the mesh was bound.
	InverseBindMatrix [16]float32

	// LocalTransform is the bone's bind-pose transform relative to its parent.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy for skeletal animation.
// Bones are topologically sorted: a parent always precedes its children.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// BoneIndex looks up a bone by name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - int32: the bone index, or -1 if absent
//   - bool: true if the bone exists
func (s *Skeleton) BoneIndex(name string) (int32, bool) {
	if s == nil {
		return -1, false
	}
	idx, ok := s.BoneNameToIndex[name]
	if !ok {
		return -1, false
	}
	return idx, true
}

// NewSkeleton builds a Skeleton from a bone list, filling RootBoneIndices and BoneNameToIndex.
//
// Parameters:
//   - bones: the bones, parents before children
//
// Returns:
//   - *Skeleton: the indexed skeleton
func NewSkeleton(bones []Bone) *Skeleton {
	s := &Skeleton{
		Bones:           bones,
		BoneNameToIndex: make(map[string]int32, len(bones)),
	}
	for i, b := range bones {
		s.BoneNameToIndex[b.Name] = int32(i)
		if b.ParentIndex < 0 {
			s.RootBoneIndices = append(s.RootBoneIndices, int32(i))
		}
	}
	return s
}

// --- Animation Types ---

// AnimationChannel contains keyframe data for a single bone over the model's whole timeline.
type AnimationChannel struct {
	// BoneName is the name of the bone this channel animates. Channels are bound by name
	// so that one timeline can drive bones of another skeleton instance.
	BoneName string

	// BoneIndex is the index of the bone in the owning model's skeleton (-1 if the model has none).
	BoneIndex int32

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe (x, y, z, w).
	Value [4]float32
}

// ScalarKeyframe stores a single float value at a specific time.
type ScalarKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the scalar value at this keyframe.
	Value float32
}

// ClockRealtime marks a GenericCurve driven by the entity's own elapsed time
// instead of a layer cursor.
const ClockRealtime = "realtime"

// GenericCurve is a controller curve that targets no bone, such as a particle
// emission rate or a visibility fade.
type GenericCurve struct {
	// Name identifies the curve's target property.
	Name string

	// Clock selects an explicit input source. Empty means the curve follows the layer cursor.
	Clock string

	// Keys are the curve's keyframes, sorted by time.
	Keys []ScalarKeyframe
}

// Sample evaluates the curve at time t, clamping outside the key range.
func (c *GenericCurve) Sample(t float32) float32 {
	keys := c.Keys
	if len(keys) == 0 {
		return 0
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	if i == 0 {
		return keys[0].Value
	}
	if i == len(keys) {
		return keys[len(keys)-1].Value
	}
	a, b := keys[i-1], keys[i]
	f := (t - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*f
}

// Translation samples the channel's translation at time t.
//
// Parameters:
//   - t: the timeline position in seconds
//
// Returns:
//   - [3]float32: the interpolated translation
//   - bool: false if the channel has no translation keys
func (c *AnimationChannel) Translation(t float32) ([3]float32, bool) {
	return sampleVector(c.PositionKeys, t)
}

// Scale samples the channel's scale at time t.
//
// Parameters:
//   - t: the timeline position in seconds
//
// Returns:
//   - [3]float32: the interpolated scale
//   - bool: false if the channel has no scale keys
func (c *AnimationChannel) Scale(t float32) ([3]float32, bool) {
	return sampleVector(c.ScaleKeys, t)
}

// Rotation samples the channel's rotation at time t using spherical interpolation.
//
// Parameters:
//   - t: the timeline position in seconds
//
// Returns:
//   - [4]float32: the interpolated unit quaternion
//   - bool: false if the channel has no rotation keys
func (c *AnimationChannel) Rotation(t float32) ([4]float32, bool) {
	keys := c.RotationKeys
	if len(keys) == 0 {
		return common.QuatIdentity(), false
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	if i == 0 {
		return keys[0].Value, true
	}
	if i == len(keys) {
		return keys[len(keys)-1].Value, true
	}
	a, b := keys[i-1], keys[i]
	f := (t - a.Time) / (b.Time - a.Time)
	return common.QuatSlerp(a.Value, b.Value, f), true
}

func sampleVector(keys []VectorKeyframe, t float32) ([3]float32, bool) {
	if len(keys) == 0 {
		return [3]float32{}, false
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	if i == 0 {
		return keys[0].Value, true
	}
	if i == len(keys) {
		return keys[len(keys)-1].Value, true
	}
	a, b := keys[i-1], keys[i]
	f := (t - a.Time) / (b.Time - a.Time)
	return common.Vec3Lerp(a.Value, b.Value, f), true
}

// --- Text Keys ---

// TextKey is a labeled event on a model's timeline, e.g. "Walk: start" or "sound: Footstep".
type TextKey struct {
	// Time is the event timestamp in seconds.
	Time float32

	// Label is the event text.
	Label string
}

// TextKeyMap is a timeline of text keys ordered by time. Keys sharing a timestamp keep
// their insertion order.
type TextKeyMap []TextKey

// NewTextKeyMap sorts the given keys by time (stable) into a TextKeyMap.
//
// Parameters:
//   - keys: the text keys in any order
//
// Returns:
//   - TextKeyMap: the ordered timeline
func NewTextKeyMap(keys ...TextKey) TextKeyMap {
	m := make(TextKeyMap, len(keys))
	copy(m, keys)
	sort.SliceStable(m, func(i, j int) bool { return m[i].Time < m[j].Time })
	return m
}

// Find returns the index of the first key at or after from whose label equals label,
// or len(m) if there is none.
//
// Parameters:
//   - label: the exact label to search for
//   - from: the index to start searching at
//
// Returns:
//   - int: the key index, or len(m) if not found
func (m TextKeyMap) Find(label string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(m); i++ {
		if m[i].Label == label {
			return i
		}
	}
	return len(m)
}

// FindGroupStart returns the index of the first key belonging to the named group
// (label prefixed with "{group}: "), or len(m) if the group has no keys.
func (m TextKeyMap) FindGroupStart(group string) int {
	prefix := group + ": "
	for i := range m {
		if strings.HasPrefix(m[i].Label, prefix) {
			return i
		}
	}
	return len(m)
}

// HasGroup reports whether any key belongs to the named group.
func (m TextKeyMap) HasGroup(group string) bool {
	return m.FindGroupStart(group) < len(m)
}

// --- Renderables ---

// Renderable names a mesh entity of an object set, optionally attached to a bone.
type Renderable struct {
	// Name is the renderable's identifier.
	Name string

	// Bone is the bone the renderable follows, or empty for the object root.
	Bone string
}

// ParticleSystem names a particle emitter of an object set, optionally attached to a bone.
type ParticleSystem struct {
	// Name is the particle system's identifier.
	Name string

	// Bone is the bone the emitter follows, or empty for the object root.
	Bone string
}
