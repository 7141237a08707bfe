package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/spheretrace/asset/reader"
	"github.com/achilleasa/spheretrace/asset/writer"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/scene/builtin"
	"github.com/achilleasa/spheretrace/types"
	"github.com/urfave/cli"
)

// The random stream used for placing objects in generated scenes. Pixel
// rows use the streams starting from zero.
const sceneStream uint64 = 1 << 63

// Build a builtin scene or load a scene archive from a file or URL.
func loadScene(ctx context.Context, name string, frameW, frameH uint32, seed uint64) (*scene.Scene, error) {
	builder, err := builtin.Lookup(name)
	if err == nil {
		logger.Infof("building builtin scene %q", name)
		return builder(frameW, frameH, types.NewRand(seed, sceneStream)), nil
	}

	if !strings.HasSuffix(strings.ToLower(name), ".zip") {
		return nil, fmt.Errorf("%w; use one of %s or a .zip scene archive", err, strings.Join(builtin.Names(), ", "))
	}
	return reader.ReadScene(ctx, name)
}

// Export a builtin scene to a zip archive.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected a builtin scene name and an output zip file")
	}

	name, zipFile := ctx.Args().Get(0), ctx.Args().Get(1)
	if !strings.HasSuffix(zipFile, ".zip") {
		return errors.New("scene archives must have a .zip extension")
	}

	builder, err := builtin.Lookup(name)
	if err != nil {
		return err
	}

	frameW, frameH := ctx.Int("width"), ctx.Int("height")
	if frameW <= 0 || frameH <= 0 {
		return errors.New("frame dimensions must be positive")
	}
	sc := builder(uint32(frameW), uint32(frameH), types.NewRand(uint64(ctx.Int64("seed")), sceneStream))

	// Display scene info
	logger.Noticef("scene information:\n%s", sc.Stats())

	if err = writer.WriteScene(sc, zipFile); err != nil {
		return err
	}
	logger.Noticef("exported scene %q to %s", name, zipFile)
	return nil
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name or scene zip file")
	}

	sc, err := loadScene(context.Background(), ctx.Args().First(), 200, 100, uint64(ctx.Int64("seed")))
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	if sc.Camera != nil {
		logger.Infof("camera: %s", sc.Camera)
	}
	return nil
}

// List builtin scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	for _, name := range builtin.Names() {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}
