package animation

import "log"

// AnimationBuilderOption is a functional option for configuring an Animation via NewAnimation.
type AnimationBuilderOption func(*animation)

// WithLoader sets the ModelLoader used by Attach.
//
// Parameters:
//   - loader: the model loader
//
// Returns:
//   - AnimationBuilderOption: a function that applies the loader option
func WithLoader(loader ModelLoader) AnimationBuilderOption {
	return func(a *animation) {
		a.loader = loader
	}
}

// WithSoundManager sets the receiver of "sound: " text keys.
//
// Parameters:
//   - sounds: the sound manager
//
// Returns:
//   - AnimationBuilderOption: a function that applies the sound manager option
func WithSoundManager(sounds SoundManager) AnimationBuilderOption {
	return func(a *animation) {
		a.sounds = sounds
	}
}

// WithMarkerListener sets the receiver of marker events.
//
// Parameters:
//   - l: the marker listener
//
// Returns:
//   - AnimationBuilderOption: a function that applies the marker listener option
func WithMarkerListener(l MarkerListener) AnimationBuilderOption {
	return func(a *animation) {
		a.marker = l
	}
}

// WithAccumulation sets the per-axis root-motion accumulation mask.
//
// Parameters:
//   - mask: 0 or 1 per axis
//
// Returns:
//   - AnimationBuilderOption: a function that applies the accumulation option
func WithAccumulation(mask [3]float32) AnimationBuilderOption {
	return func(a *animation) {
		a.accumulate = mask
	}
}

// WithEntity sets the entity reference passed to the SoundManager.
//
// Parameters:
//   - entity: the entity identifier
//
// Returns:
//   - AnimationBuilderOption: a function that applies the entity option
func WithEntity(entity uint64) AnimationBuilderOption {
	return func(a *animation) {
		a.entity = entity
	}
}

// WithLogger overrides the destination of diagnostics. Defaults to log.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - AnimationBuilderOption: a function that applies the logger option
func WithLogger(logger *log.Logger) AnimationBuilderOption {
	return func(a *animation) {
		if logger != nil {
			a.logger = logger
		}
	}
}
