package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
)

var ErrMissingSceneData = errors.New("reader: scene archive contains no scene data")

// Reads scenes packed by the zip writer.
type zipSceneReader struct {
	logger log.Logger
}

func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read scene definition from zip file.
func (zsr *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	zsr.logger.Noticef(`loading scene archive from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip.NewReader needs an io.ReaderAt and remote resources only
	// provide a stream so the archive is buffered in memory.
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var dataFile *zip.File
	for _, f := range zr.File {
		if f.Name == asset.DataFile {
			dataFile = f
			continue
		}
		zsr.logger.Warningf("skipping unknown archive entry %s", f.Name)
	}
	if dataFile == nil {
		return nil, ErrMissingSceneData
	}

	ar, err := decodeArchive(dataFile)
	if err != nil {
		return nil, err
	}
	sc, err := ar.Scene()
	if err != nil {
		return nil, err
	}

	zsr.logger.Noticef(
		"loaded %d spheres and %d materials in %d ms",
		len(ar.Spheres), len(ar.Materials), time.Since(start).Milliseconds(),
	)
	return sc, nil
}

func decodeArchive(f *zip.File) (*asset.Archive, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ar := &asset.Archive{}
	if err = gob.NewDecoder(rc).Decode(ar); err != nil {
		return nil, fmt.Errorf("reader: could not decode %s: %w", f.Name, err)
	}
	return ar, nil
}
