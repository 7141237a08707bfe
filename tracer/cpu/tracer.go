package cpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/spheretrace/log"
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/achilleasa/spheretrace/types"
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *tracer.Stats

	// Frame dimensions and the shared RGB frame buffer. Each tracer only
	// writes to the rows of the blocks it is assigned.
	frameW      uint32
	frameH      uint32
	frameBuffer []uint8

	// The scene and camera used for tracing. Both are treated as read-only.
	sceneData *scene.Scene
	camera    *scene.Camera
}

// Create a new cpu tracer.
func NewTracer(id string) tracer.Tracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		blockReqChan: make(chan tracer.BlockRequest, 1),
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		stats:        &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers run on a single core.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

// Initialize tracer and start its worker.
func (tr *cpuTracer) Setup(frameW, frameH uint32, frameBuffer []uint8) error {
	tr.Lock()
	defer tr.Unlock()

	if uint32(len(frameBuffer)) < 3*frameW*frameH {
		return fmt.Errorf("cpu tracer: frame buffer holds %d bytes; need %d", len(frameBuffer), 3*frameW*frameH)
	}

	tr.frameW = frameW
	tr.frameH = frameH
	tr.frameBuffer = frameBuffer

	// Start worker
	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	// If the worker is running shut it down
	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close and shutdown channel
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
	}
	tr.wg.Wait()

	tr.sceneData = nil
	tr.camera = nil
	tr.frameBuffer = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		tr.logger.Error("request processor did not receive block request")
		blockReq.ErrChan <- tracer.ErrBusy
	}
}

// Append a change to the tracer's update buffer.
func (tr *cpuTracer) Update(updateType tracer.UpdateType, data interface{}) {
	tr.Lock()
	defer tr.Unlock()
	tr.updateBuffer[updateType] = data
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes. A scene update resets the camera to the scene
// camera unless a camera update is queued in the same batch.
func (tr *cpuTracer) commitUpdates() error {
	tr.Lock()
	defer tr.Unlock()

	for updateType := range tr.updateBuffer {
		if updateType != tracer.UpdateScene && updateType != tracer.UpdateCamera {
			return fmt.Errorf("cpu tracer: unsupported update type %d", updateType)
		}
	}

	if data, exists := tr.updateBuffer[tracer.UpdateScene]; exists {
		tr.sceneData = data.(*scene.Scene)
		tr.camera = tr.sceneData.Camera
	}
	if data, exists := tr.updateBuffer[tracer.UpdateCamera]; exists {
		tr.camera = data.(*scene.Camera)
	}

	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	return nil
}

func (tr *cpuTracer) hasPendingUpdates() bool {
	tr.Lock()
	defer tr.Unlock()
	return len(tr.updateBuffer) != 0
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	tr.closeChan = make(chan struct{}, 0)

	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:

				// Apply any pending changes
				if tr.hasPendingUpdates() {
					startTime = time.Now()
					err = tr.commitUpdates()
					if err != nil {
						blockReq.ErrChan <- err
						continue
					}
					tr.stats.UpdateTime = time.Since(startTime)
				}

				// Render block and reply with our completion status
				startTime = time.Now()
				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Update stats
				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render block. Every pixel row draws from its own random stream so the
// frame contents do not depend on how rows are split between tracers.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	if tr.sceneData == nil || tr.camera == nil {
		return tracer.ErrNoSceneData
	}
	if blockReq.BlockY+blockReq.BlockH > tr.frameH {
		return tracer.ErrBlockBounds
	}

	params := tracer.Params{
		FrameW:          tr.frameW,
		FrameH:          tr.frameH,
		SamplesPerPixel: blockReq.SamplesPerPixel,
	}

	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		j := tr.frameH - 1 - y
		rng := types.NewRand(blockReq.Seed, uint64(j))
		offset := 3 * y * tr.frameW
		for i := uint32(0); i < tr.frameW; i++ {
			rgb := tracer.Quantize(tracer.SamplePixel(i, j, params, tr.sceneData, tr.camera, rng))
			copy(tr.frameBuffer[offset+3*i:], rgb[:])
			if blockReq.Progress != nil {
				blockReq.Progress.Increment()
			}
		}
	}

	tr.logger.Debugf("rendered rows [%d, %d)", blockReq.BlockY, blockReq.BlockY+blockReq.BlockH)
	return nil
}
