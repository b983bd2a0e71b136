package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkeleton is an option builder that sets the bone hierarchy of the Model.
//
// Parameters:
//   - skeleton: the skeleton to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the skeleton option to a model
func WithSkeleton(skeleton *Skeleton) ModelBuilderOption {
	return func(m *model) {
		m.skeleton = skeleton
	}
}

// WithChannels is an option builder that sets the bone-targeting keyframe channels of the Model.
//
// Parameters:
//   - channels: the channels to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the channels option to a model
func WithChannels(channels ...AnimationChannel) ModelBuilderOption {
	return func(m *model) {
		m.channels = channels
	}
}

// WithCurves is an option builder that sets the generic (non-bone) curves of the Model.
//
// Parameters:
//   - curves: the curves to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the curves option to a model
func WithCurves(curves ...GenericCurve) ModelBuilderOption {
	return func(m *model) {
		m.curves = curves
	}
}

// WithTextKeys is an option builder that sets the timeline labels of the Model and the
// bone they are attached to. The keys are sorted by time.
//
// Parameters:
//   - root: the bone the text keys belong to (the non-accumulation root)
//   - keys: the text keys in any order
//
// Returns:
//   - ModelBuilderOption: a function that applies the text keys option to a model
func WithTextKeys(root string, keys ...TextKey) ModelBuilderOption {
	return func(m *model) {
		m.textKeyRoot = root
		m.textKeys = NewTextKeyMap(keys...)
	}
}

// WithRenderables is an option builder that sets the mesh entities of the Model.
//
// Parameters:
//   - renderables: the renderables to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the renderables option to a model
func WithRenderables(renderables ...Renderable) ModelBuilderOption {
	return func(m *model) {
		m.renderables = renderables
	}
}

// WithParticles is an option builder that sets the particle systems of the Model.
//
// Parameters:
//   - particles: the particle systems to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the particles option to a model
func WithParticles(particles ...ParticleSystem) ModelBuilderOption {
	return func(m *model) {
		m.particles = particles
	}
}
