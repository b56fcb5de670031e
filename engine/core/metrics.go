package core

import "sync"

const metricsAvgCount uint8 = 30

type metricsState struct {
	frameAvgCounter    uint8
	msTimes            [metricsAvgCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

var onceMetrics sync.Once
var metrics *metricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metrics = &metricsState{}
	})
	return nil
}

// MetricsUpdate feeds one frame's elapsed time (seconds). Called once per
// tick at the end of the render chain.
func MetricsUpdate(frameElapsedTime float64) {
	if metrics == nil {
		return
	}
	frameMS := frameElapsedTime * 1000.0
	metrics.msTimes[metrics.frameAvgCounter] = frameMS
	if metrics.frameAvgCounter == metricsAvgCount-1 {
		sum := 0.0
		for i := uint8(0); i < metricsAvgCount; i++ {
			sum += metrics.msTimes[i]
		}
		metrics.msAvg = sum / float64(metricsAvgCount)
	}
	metrics.frameAvgCounter++
	metrics.frameAvgCounter %= metricsAvgCount

	metrics.accumulatedFrameMS += frameMS
	if metrics.accumulatedFrameMS > 1000 {
		metrics.fps = float64(metrics.frames)
		metrics.accumulatedFrameMS -= 1000
		metrics.frames = 0
	}
	metrics.frames++
}

// MetricsFrame returns frames per second and the rolling frame-time
// average in milliseconds.
func MetricsFrame() (float64, float64) {
	if metrics == nil {
		return 0, 0
	}
	return metrics.fps, metrics.msAvg
}
