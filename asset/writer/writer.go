package writer

import (
	"io"
	"os"

	"github.com/achilleasa/spheretrace/scene"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(io.Writer, *scene.Scene) error
}

// Write scene to a zip archive.
func WriteScene(sc *scene.Scene, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = newZipSceneWriter().Write(f, sc)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
