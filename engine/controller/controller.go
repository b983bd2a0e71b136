package controller

type controller struct {
	kind    Kind
	source  ValueSource
	bone    *BoneTarget
	generic *GenericTarget
}

// Controller defines the interface for a time-driven animation controller. A controller
// reads its input time from a ValueSource and applies the sampled value to its target.
// Bone controllers write transforms into skeleton bones; generic controllers drive any
// other property (particle rates, visibility) through a ValueSink.
type Controller interface {
	// Kind returns the controller variant.
	//
	// Returns:
	//   - Kind: KindBone or KindGeneric
	Kind() Kind

	// Name returns the target name: the channel's bone name or the curve name.
	//
	// Returns:
	//   - string: the target name
	Name() string

	// Clock returns the controller's explicit clock, or empty if it follows a layer cursor.
	//
	// Returns:
	//   - string: the clock name
	Clock() string

	// Source returns the current input source, or nil if none is bound.
	//
	// Returns:
	//   - ValueSource: the source
	Source() ValueSource

	// SetSource binds the controller to an input source.
	//
	// Parameters:
	//   - src: the new source, or nil to unbind
	SetSource(src ValueSource)

	// Update reads the source and applies the sampled value to the target.
	// A controller with no source does nothing.
	Update()

	// BoneTarget returns the bone target for KindBone controllers, nil otherwise.
	//
	// Returns:
	//   - *BoneTarget: the target or nil
	BoneTarget() *BoneTarget

	// GenericTarget returns the generic target for KindGeneric controllers, nil otherwise.
	//
	// Returns:
	//   - *GenericTarget: the target or nil
	GenericTarget() *GenericTarget
}

var _ Controller = &controller{}

// NewBoneController creates a KindBone controller.
//
// Parameters:
//   - target: the bone target (must not be nil)
//   - src: the input source, may be nil
//
// Returns:
//   - Controller: the new controller
func NewBoneController(target *BoneTarget, src ValueSource) Controller {
	if target == nil {
		panic("controller: nil bone target")
	}
	return &controller{kind: KindBone, source: src, bone: target}
}

// NewGenericController creates a KindGeneric controller.
//
// Parameters:
//   - target: the generic target (must not be nil)
//   - src: the input source, may be nil
//
// Returns:
//   - Controller: the new controller
func NewGenericController(target *GenericTarget, src ValueSource) Controller {
	if target == nil {
		panic("controller: nil generic target")
	}
	return &controller{kind: KindGeneric, source: src, generic: target}
}

func (c *controller) Kind() Kind {
	return c.kind
}

func (c *controller) Name() string {
	if c.kind == KindBone {
		return c.bone.channel.BoneName
	}
	return c.generic.curve.Name
}

func (c *controller) Clock() string {
	if c.kind == KindGeneric {
		return c.generic.curve.Clock
	}
	return ""
}

func (c *controller) Source() ValueSource {
	return c.source
}

func (c *controller) SetSource(src ValueSource) {
	c.source = src
}

func (c *controller) Update() {
	if c.source == nil {
		return
	}
	t := c.source.Value()
	switch c.kind {
	case KindBone:
		c.bone.Apply(t)
	case KindGeneric:
		c.generic.Apply(t)
	}
}

func (c *controller) BoneTarget() *BoneTarget {
	return c.bone
}

func (c *controller) GenericTarget() *GenericTarget {
	return c.generic
}
