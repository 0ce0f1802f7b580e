package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports load, session and HTTP events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("Loading", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Load failed", "source", source, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("Load complete", "source", source, "entities", count, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnAdvanceStep(step int) {
	h.logger.Debug("Advanced step", "step", step)
}

func (h logHooks) OnRotate(step int) {
	h.logger.Debug("Rotated values", "step", step)
}

func (h logHooks) OnIgnoredInput(input string) {
	h.logger.Debug("Ignored input", "input", input)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("HTTP", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}
