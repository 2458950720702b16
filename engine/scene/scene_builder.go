package scene

import (
	"log"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLogger routes the scene's "[Board]" event log to logger instead of the standard logger.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *log.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFeedback registers a receiver for selection events, such as the audio cue player.
//
// Parameters:
//   - fb: the event receiver
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFeedback(fb Feedback) SceneBuilderOption {
	return func(s *scene) {
		s.feedback = fb
	}
}

// WithSelectionOptions forwards options to the scene's selection state machine.
func WithSelectionOptions(options ...selection.InputContextOption) SceneBuilderOption {
	return func(s *scene) {
		s.selectionOptions = append(s.selectionOptions, options...)
	}
}

// WithControllerOptions forwards options to the scene's camera gesture controller.
func WithControllerOptions(options ...camera.CameraControllerOption) SceneBuilderOption {
	return func(s *scene) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}

// WithClearColor overrides the gray background.
func WithClearColor(c mgl32.Vec4) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

// WithTextureBlend sets how strongly textures are mixed into the base colors once enabled, in [0, 1].
//
// Parameters:
//   - blend: the mix factor, 0.7 by default
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextureBlend(blend float32) SceneBuilderOption {
	return func(s *scene) {
		s.blend = max(0, min(blend, 1))
	}
}
