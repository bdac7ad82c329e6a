package watcher

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/ineffable/internal/config/layer"
	"github.com/dshills/ineffable/internal/config/loader"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/logging"
	"github.com/dshills/ineffable/internal/report"
)

// ErrNoLayer indicates a changed file is not the source of any layer.
var ErrNoLayer = errors.New("no layer loaded from file")

// Reloader reloads the layer backed by a changed file and applies the
// stack's effective configuration to a context.
type Reloader struct {
	loader *loader.Loader
	stack  *layer.Stack
	ctx    *ineffable.Context
	logger *logging.Logger
}

// NewReloader creates a reloader. A nil loader reads from the OS file system.
func NewReloader(l *loader.Loader, stack *layer.Stack, ctx *ineffable.Context, logger *logging.Logger) *Reloader {
	if l == nil {
		l = loader.New(nil)
	}
	return &Reloader{
		loader: l,
		stack:  stack,
		ctx:    ctx,
		logger: logging.OrNull(logger).WithComponent("reload"),
	}
}

// Handle is a Handler that reloads on write and create events.
// Removed files keep their last loaded configuration.
func (r *Reloader) Handle(ev Event) {
	switch ev.Op {
	case OpWrite, OpCreate:
	default:
		r.logger.Warn("%s %s, keeping last loaded bindings", ev.Path, ev.Op)
		return
	}
	if _, err := r.Reload(ev.Path); err != nil {
		r.logger.Error("reload %s: %v", ev.Path, err)
	}
}

// Reload reads path into its layer and applies the effective configuration.
// When the file cannot be parsed, has bindings that fail to decode, or the
// result is rejected, the layer and the context keep their previous
// configuration. The returned report holds
// both decode and validation problems.
func (r *Reloader) Reload(path string) (*report.Report, error) {
	lay := r.layerFor(path)
	if lay == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLayer, path)
	}

	cfg, rep, err := r.loader.Load(lay.Path)
	if err != nil {
		return rep, err
	}
	if rep.HasErrors() {
		return rep, fmt.Errorf("%w: %s has %d decode error(s)", ineffable.ErrConfigRejected, lay.Path, len(rep.Errors()))
	}

	prev := lay.Config
	if err := r.stack.Set(lay.Name, cfg); err != nil {
		return rep, err
	}

	vrep, err := r.ctx.SetConfigFrom(r.stack.Effective(), lay.Path)
	rep.Merge(vrep)
	if err != nil {
		if rerr := r.stack.Set(lay.Name, prev); rerr != nil {
			r.logger.Error("restore layer %s: %v", lay.Name, rerr)
		}
		return rep, err
	}
	r.logger.Info("reloaded layer %s from %s", lay.Name, lay.Path)
	return rep, nil
}

func (r *Reloader) layerFor(path string) *layer.Layer {
	if l := r.stack.LayerByPath(path); l != nil {
		return l
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	for _, l := range r.stack.Layers() {
		if l.Path == "" {
			continue
		}
		if la, err := filepath.Abs(l.Path); err == nil && la == abs {
			return l
		}
	}
	return nil
}
