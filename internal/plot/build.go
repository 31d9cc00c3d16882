// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/aclements/plotscale/internal/scale"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type BuildOptions struct {
	// Parallel trains a clone of every scale per layer concurrently,
	// then merges the clones into the scales in layer order.
	Parallel bool

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// A Rendering is the result of a render pass.
type Rendering struct {
	Scales []scale.Scale
	// Views has one entry per scale.
	Views []*scale.View
	// Layers are the layers with every aesthetic column mapped.
	Layers []Layer

	Confidence float64
}

// Build runs a render pass over the points of p. It transforms every
// layer by each scale, trains the scales on all layers, takes a view of
// each scale, and then maps every layer.
func (p *Plot) Build(ctx context.Context, opts BuildOptions) (*Rendering, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if len(p.points) == 0 {
		return nil, fmt.Errorf("no data")
	}

	layers, err := p.layers()
	if err != nil {
		return nil, err
	}
	scales, err := p.scalesFor(layers, logger)
	if err != nil {
		return nil, err
	}

	for i, l := range layers {
		for _, s := range scales {
			t, err := s.TransformFrame(l.Data)
			if err != nil {
				return nil, fmt.Errorf("transforming layer %s: %w", l.Name, err)
			}
			l.Data = t
		}
		layers[i] = l
	}

	for _, s := range scales {
		s.Reset()
	}
	if opts.Parallel {
		err = trainParallel(ctx, scales, layers)
	} else {
		err = train(ctx, scales, layers)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*scale.View, len(scales))
	for i, s := range scales {
		if views[i], err = s.View(); err != nil {
			return nil, err
		}
	}

	mapped := make([]Layer, len(layers))
	for i, l := range layers {
		for _, s := range scales {
			t, err := s.MapFrame(l.Data)
			if err != nil {
				return nil, fmt.Errorf("mapping layer %s: %w", l.Name, err)
			}
			l.Data = t
		}
		mapped[i] = l
	}
	logger.Debug("built plot", "layers", len(layers), "scales", len(scales), "parallel", opts.Parallel)

	return &Rendering{Scales: scales, Views: views, Layers: mapped, Confidence: p.confidence}, nil
}

// train trains scales on layers in layer order.
func train(ctx context.Context, scales []scale.Scale, layers []Layer) error {
	for _, l := range layers {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, s := range scales {
			if err := s.TrainFrame(l.Data); err != nil {
				return fmt.Errorf("training on layer %s: %w", l.Name, err)
			}
		}
	}
	return nil
}

// trainParallel trains a clone of each scale per layer, each layer in
// its own goroutine, and merges the clones back into scales in layer
// order. A scale is never touched by more than one goroutine.
func trainParallel(ctx context.Context, scales []scale.Scale, layers []Layer) error {
	clones := make([][]scale.Scale, len(layers))
	for i := range layers {
		clones[i] = make([]scale.Scale, len(scales))
		for j, s := range scales {
			clones[i][j] = s.CloneScale()
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, l := range layers {
		i, l := i, l
		g.Go(func() error {
			for _, c := range clones[i] {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := c.TrainFrame(l.Data); err != nil {
					return fmt.Errorf("training on layer %s: %w", l.Name, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range layers {
		for j, s := range scales {
			if err := s.MergeRange(clones[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// View returns the view of the scale governing aes, or nil.
func (r *Rendering) View(aes scale.Aes) *scale.View {
	for _, v := range r.Views {
		if slices.Contains(v.Aesthetics, aes) {
			return v
		}
	}
	return nil
}

// Layer returns the layer with the given name, or nil.
func (r *Rendering) Layer(name string) *Layer {
	for i := range r.Layers {
		if r.Layers[i].Name == name {
			return &r.Layers[i]
		}
	}
	return nil
}

// WriteViews writes a line describing each scale's view to w.
func (r *Rendering) WriteViews(w io.Writer) error {
	for _, v := range r.Views {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
