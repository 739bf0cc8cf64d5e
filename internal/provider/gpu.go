package provider

import (
	"fmt"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/gpu"
)

// GraphicsEnumerator lists adapters through ghw.
type GraphicsEnumerator struct {
	root string
}

// NewGPU returns a GPU provider reading beneath root ("" for /).
func NewGPU(root string) *GraphicsEnumerator {
	return &GraphicsEnumerator{root: root}
}

// Adapters returns every graphics card ghw can see, in bus order.
func (g *GraphicsEnumerator) Adapters() ([]Adapter, error) {
	opts := []*ghw.WithOption{ghw.WithDisableWarnings()}
	if g.root != "" {
		opts = append(opts, ghw.WithChroot(g.root))
	}

	info, err := ghw.GPU(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate graphics adapters: %v", errors.ErrProviderUnavailable, err)
	}
	return adaptersFrom(info.GraphicsCards), nil
}

func adaptersFrom(cards []*gpu.GraphicsCard) []Adapter {
	adapters := make([]Adapter, 0, len(cards))
	for _, card := range cards {
		if card == nil {
			continue
		}
		a := Adapter{Address: card.Address}
		if dev := card.DeviceInfo; dev != nil {
			a.Driver = dev.Driver
			if dev.Product != nil {
				a.Name = dev.Product.Name
			}
			if dev.Vendor != nil {
				a.Vendor = dev.Vendor.Name
			}
		}
		if a.Name == "" {
			a.Name = card.Address
		}
		adapters = append(adapters, a)
	}
	return adapters
}
