package reader

import (
	"context"
	"errors"

	"github.com/achilleasa/spheretrace/asset"
	"github.com/achilleasa/spheretrace/scene"
)

var ErrUnsupportedFormat = errors.New("reader: unsupported scene file format")

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or an http/https URL.
func ReadScene(ctx context.Context, pathToScene string) (*scene.Scene, error) {
	res, err := asset.NewResource(ctx, pathToScene)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	switch res.Ext() {
	case ".zip":
		reader = newZipSceneReader()
	default:
		return nil, ErrUnsupportedFormat
	}
	return reader.Read(res)
}
