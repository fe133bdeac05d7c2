// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package imagery

import (
	"context"
	"slices"

	"github.com/janderssonse/osusume/internal/domain"
	"golang.org/x/sync/errgroup"
)

// probeConcurrency bounds the number of HEAD requests in flight.
const probeConcurrency = 4

// Checker checks that an image URL can be loaded.
type Checker interface {
	Probe(ctx context.Context, url string) error
}

// Request is one image to check. Eager requests are dispatched first.
type Request struct {
	Ref   domain.ImageRef
	Eager bool
}

// Failure is an image that could not be loaded.
type Failure struct {
	Identifier string
	Err        error
}

// Prober checks tile images and records failures in a Renderer.
type Prober struct {
	checker  Checker
	renderer *Renderer
	limit    int
}

// NewProber creates a prober reporting to renderer.
func NewProber(checker Checker, renderer *Renderer) *Prober {
	return &Prober{checker: checker, renderer: renderer, limit: probeConcurrency}
}

// Probe checks every request with a source that has not failed before.
// Failures are recorded per identifier and returned; they never abort
// the remaining checks.
func (p *Prober) Probe(ctx context.Context, requests []Request) []Failure {
	pending := make([]Request, 0, len(requests))
	seen := make(map[string]bool, len(requests))

	for _, req := range requests {
		if req.Ref.Src == "" || seen[req.Ref.Identifier] || p.renderer.Failed(req.Ref.Identifier) {
			continue
		}

		seen[req.Ref.Identifier] = true
		pending = append(pending, req)
	}

	slices.SortStableFunc(pending, func(a, b Request) int {
		switch {
		case a.Eager == b.Eager:
			return 0
		case a.Eager:
			return -1
		default:
			return 1
		}
	})

	failures := make([]*Failure, len(pending))

	var group errgroup.Group

	group.SetLimit(p.limit)

	for i, req := range pending {
		group.Go(func() error {
			if err := p.checker.Probe(ctx, req.Ref.Src); err != nil {
				p.renderer.MarkFailed(req.Ref.Identifier)
				failures[i] = &Failure{Identifier: req.Ref.Identifier, Err: err}
			}

			return nil
		})
	}

	_ = group.Wait()

	var result []Failure

	for _, failure := range failures {
		if failure != nil {
			result = append(result, *failure)
		}
	}

	return result
}
