package model

// model is the implementation of the Model interface.
type model struct {
	name        string
	baseOnly    bool
	skeleton    *Skeleton
	channels    []AnimationChannel
	curves      []GenericCurve
	textKeyRoot string
	textKeys    TextKeyMap
	renderables []Renderable
	particles   []ParticleSystem
}

// Model defines the interface for a loaded object set description.
// A Model bundles everything one attachment contributes to an animated entity:
// an optional skeleton, per-bone keyframe channels and generic curves sharing a single
// timeline, the text keys labeling that timeline, and the renderables and particle
// systems to show. A Model is read-only once loaded; runtime state lives in the
// skeleton instances and controllers built from it.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// BaseOnly reports whether the model was loaded without renderables or particles.
	//
	// Returns:
	//   - bool: true if only the skeleton, channels and text keys were loaded
	BaseOnly() bool

	// Skeleton retrieves the bone hierarchy for this model.
	// Returns nil for models without an embedded skeleton.
	//
	// Returns:
	//   - *Skeleton: the skeleton or nil
	Skeleton() *Skeleton

	// Channels retrieves the bone-targeting keyframe channels.
	//
	// Returns:
	//   - []AnimationChannel: the channels
	Channels() []AnimationChannel

	// Curves retrieves the curves that target no bone.
	//
	// Returns:
	//   - []GenericCurve: the curves
	Curves() []GenericCurve

	// TextKeyRoot returns the name of the bone the text keys were attached to.
	// This bone is the non-accumulation root of the skeleton.
	//
	// Returns:
	//   - string: the bone name, or empty if the model has no text keys
	TextKeyRoot() string

	// TextKeys returns the model's timeline labels ordered by time.
	//
	// Returns:
	//   - TextKeyMap: the text keys
	TextKeys() TextKeyMap

	// Renderables returns the model's mesh entities.
	//
	// Returns:
	//   - []Renderable: the renderables
	Renderables() []Renderable

	// Particles returns the model's particle systems.
	//
	// Returns:
	//   - []ParticleSystem: the particle systems
	Particles() []ParticleSystem

	// BaseCopy returns a copy of this model without renderables and particles.
	//
	// Returns:
	//   - Model: the base-only copy
	BaseCopy() Model
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) BaseOnly() bool {
	return m.baseOnly
}

func (m *model) Skeleton() *Skeleton {
	return m.skeleton
}

func (m *model) Channels() []AnimationChannel {
	return m.channels
}

func (m *model) Curves() []GenericCurve {
	return m.curves
}

func (m *model) TextKeyRoot() string {
	return m.textKeyRoot
}

func (m *model) TextKeys() TextKeyMap {
	return m.textKeys
}

func (m *model) Renderables() []Renderable {
	return m.renderables
}

func (m *model) Particles() []ParticleSystem {
	return m.particles
}

func (m *model) BaseCopy() Model {
	cp := *m
	cp.baseOnly = true
	cp.renderables = nil
	cp.particles = nil
	return &cp
}
