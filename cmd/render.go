package cmd

import (
	"bytes"
	"context"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/achilleasa/spheretrace/imageio"
	"github.com/achilleasa/spheretrace/renderer"
	"github.com/achilleasa/spheretrace/storage"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.Int("width") <= 0 || ctx.Int("height") <= 0 {
		return renderer.ErrInvalidFrameSize
	}
	if ctx.Int("spp") <= 0 {
		return renderer.ErrInvalidSampleCount
	}

	opts := renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		Seed:            uint64(ctx.Int64("seed")),
		NumWorkers:      ctx.Int("workers"),
	}

	outFile := ctx.String("out")
	format, err := imageio.FormatFromPath(outFile)
	if err != nil {
		return err
	}

	var thumbW, thumbH uint
	if size := ctx.String("thumbnail"); size != "" {
		if thumbW, thumbH, err = imageio.ParseSize(size); err != nil {
			return err
		}
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load scene
	sc, err := loadScene(renderCtx, ctx.String("scene"), opts.FrameW, opts.FrameH, opts.Seed)
	if err != nil {
		return err
	}
	logger.Infof("scene information:\n%s", sc.Stats())

	var progress *progressReporter
	if ctx.Bool("progress") {
		progress = newProgressReporter(int64(opts.FrameW)*int64(opts.FrameH), int64(opts.FrameW))
		opts.Progress = progress
	}

	// Create renderer
	var r renderer.Renderer
	if ctx.Bool("serial") {
		r, err = renderer.NewSerial(sc, opts)
	} else {
		r, err = renderer.NewDefault(sc, tracer.PerfectScheduler(), opts)
	}
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame at %d spp", opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	err = r.Render(renderCtx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	// Display stats
	logger.Noticef("frame statistics\n%s", r.Stats().Table())

	frame := r.Frame()
	if err = writeFrame(renderCtx, frame, outFile, format); err != nil {
		return err
	}
	if thumbW != 0 {
		return writeFrame(renderCtx, imageio.Thumbnail(frame, thumbW, thumbH), thumbnailPath(outFile), format)
	}
	return nil
}

// Encode frame and write it to a local file or upload it to S3.
func writeFrame(ctx context.Context, img image.Image, outFile string, format imageio.Format) error {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		return err
	}

	if storage.IsS3URL(outFile) {
		uploader, err := storage.NewUploader(storage.ConfigFromEnv())
		if err != nil {
			return err
		}
		return uploader.Upload(ctx, outFile, buf.Bytes(), format.MimeType())
	}

	if err := os.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
		return err
	}
	logger.Noticef("wrote %s frame to %s", format, outFile)
	return nil
}

// Derive the thumbnail path by appending a .thumb suffix before the extension.
func thumbnailPath(outFile string) string {
	ext := filepath.Ext(outFile)
	return strings.TrimSuffix(outFile, ext) + ".thumb" + ext
}
