package service

import (
	"sync"

	codecDomain "github.com/allisson/serials/internal/codec/domain"
	codecService "github.com/allisson/serials/internal/codec/service"
)

// CodecFactory hands out one shared creator per predefined alphabet. All creators use
// the same transformer registry.
type CodecFactory struct {
	registry *codecService.Registry

	mu       sync.Mutex
	creators map[string]*codecService.Creator
}

// NewCodecFactory creates a factory backed by registry.
func NewCodecFactory(registry *codecService.Registry) *CodecFactory {
	return &CodecFactory{
		registry: registry,
		creators: make(map[string]*codecService.Creator),
	}
}

// Creator returns the creator for the named alphabet, building it on first use.
func (f *CodecFactory) Creator(alphabetName string) (*codecService.Creator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.creators[alphabetName]; ok {
		return c, nil
	}

	alphabet, err := codecDomain.AlphabetByName(alphabetName)
	if err != nil {
		return nil, err
	}
	c, err := codecService.NewCreator(alphabet, f.registry)
	if err != nil {
		return nil, err
	}
	f.creators[alphabetName] = c
	return c, nil
}
