package mocks

import (
	"context"
	"testing"

	"github.com/chinmay1088/voyager/api"
)

type Provider[C api.Conn] struct {
	AcquireFunc    func(ctx context.Context, network api.Network) C
	InvalidateFunc func(network api.Network)
}

// BaselineProvider hands out conn for every network.
func BaselineProvider[C api.Conn](t *testing.T, conn C) *Provider[C] {
	t.Helper()

	p := Provider[C]{
		AcquireFunc: func(context.Context, api.Network) C {
			return conn
		},
		InvalidateFunc: func(api.Network) {},
	}

	return &p
}

func (p *Provider[C]) Acquire(ctx context.Context, network api.Network) C {
	return p.AcquireFunc(ctx, network)
}

func (p *Provider[C]) Invalidate(network api.Network) {
	p.InvalidateFunc(network)
}
