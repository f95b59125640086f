// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"context"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/graph"
	"golang.org/x/sync/errgroup"
)

// CreateGeometries builds the geometry of each element over data
// concurrently and adds it to g in element order. If any element
// fails, CreateGeometries returns the first error and adds nothing.
func CreateGeometries(ctx context.Context, data dataset.DataSet, g *graph.Graph, elems ...Element) error {
	eg, ctx := errgroup.WithContext(ctx)
	rcs := make([]*renderContext, len(elems))
	for i, e := range elems {
		rc := newRenderContext(data, g)
		rcs[i] = rc
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.build(rc)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, rc := range rcs {
		g.AddGeometry(rc.out...)
	}
	return nil
}
