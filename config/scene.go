package config

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
)

// NewCamera builds the configured camera variant for a viewport of width x height pixels.
func (c Config) NewCamera(width, height int) camera.Camera {
	cam := c.Camera
	pos := camera.WithPosition(cam.Position[0], cam.Position[1], cam.Position[2])
	if cam.Projection == ProjectionOrthographic {
		o := cam.Ortho
		return camera.NewOrthographicCamera(pos, camera.WithOrthographicFrustum(camera.OrthographicFrustum{
			Left: o.Left, Right: o.Right, Bottom: o.Bottom, Top: o.Top, Near: o.Near, Far: o.Far,
		}))
	}

	frustum := camera.PerspectiveFrustum{
		FovDegrees: cam.Fov,
		Width:      float32(width),
		Height:     float32(height),
		Near:       cam.Near,
		Far:        cam.Far,
	}
	if cam.LegacyFar {
		frustum.Far = camera.LegacyPerspectiveFrustum.Far
	}
	return camera.NewPerspectiveCamera(width, height, pos,
		camera.WithPerspectiveFrustum(frustum),
		camera.WithLookAt(cam.LookAt[0], cam.LookAt[1], cam.LookAt[2]),
		camera.WithUp(cam.Up[0], cam.Up[1], cam.Up[2]),
	)
}

// NewScene builds the board, camera and scene described by c.
//
// Parameters:
//   - name: the scene name used in logs
//   - width, height: the initial viewport in pixels
//   - logger: destination for "[Board]" lines, nil for the default logger
//   - feedback: receiver for selection events, nil for none
//
// Returns:
//   - scene.Scene: the assembled scene
//   - error: an error if the board could not be laid out
func (c Config) NewScene(name string, width, height int, logger *log.Logger, feedback scene.Feedback) (scene.Scene, error) {
	b, err := board.NewBoard(board.WithSize(c.Board.Width, c.Board.Height))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	options := []scene.SceneBuilderOption{
		scene.WithTextureBlend(c.Textures.Blend),
		scene.WithClearColor(c.Render.ClearColor),
		scene.WithSelectionOptions(selection.WithTextures(c.Textures.Enabled)),
		scene.WithControllerOptions(
			camera.WithAngularSpeed(c.Camera.OrbitSpeed),
			camera.WithZoomFactors(c.Camera.ZoomIn, c.Camera.ZoomOut),
			camera.WithHeightBounds(c.Camera.MinHeight, c.Camera.MaxHeight),
		),
	}
	if logger != nil {
		options = append(options, scene.WithLogger(logger))
	}
	if feedback != nil {
		options = append(options, scene.WithFeedback(feedback))
	}
	return scene.NewScene(name, b, c.NewCamera(width, height), options...), nil
}
