package writer

import (
	"archive/zip"
	"encoding/gob"
	"io"
	"time"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
)

type zipSceneWriter struct {
	logger log.Logger
}

// Create a new zip scene writer.
func newZipSceneWriter() *zipSceneWriter {
	return &zipSceneWriter{
		logger: log.New("zip writer"),
	}
}

// Write the scene as a gob-encoded entry inside a zip archive.
func (w *zipSceneWriter) Write(out io.Writer, sc *scene.Scene) error {
	start := time.Now()

	zw := zip.NewWriter(out)
	entry, err := zw.Create(asset.DataFile)
	if err != nil {
		return err
	}

	ar := asset.NewArchive(sc)
	if err = gob.NewEncoder(entry).Encode(ar); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	w.logger.Infof("wrote %d spheres and %d materials in %d ms", len(ar.Spheres), len(ar.Materials), time.Since(start).Nanoseconds()/1000000)
	return nil
}
