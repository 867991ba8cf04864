package clients

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

type Registry struct {
	mu      sync.RWMutex
	clients []Interface
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make([]Interface, 0),
	}
}

func (r *Registry) Register(client Interface) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients = append(r.clients, client)
}

func (r *Registry) GetAll() []Interface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Interface, len(r.clients))
	copy(result, r.clients)
	return result
}

// NotifyAll delivers report to every client and joins their errors.
func (r *Registry) NotifyAll(ctx context.Context, report Report) error {
	var errs []error
	for _, client := range r.GetAll() {
		if err := client.Notify(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", client.Name(), err))
			continue
		}
		log.Printf("✅ Run %s reported to %s\n", report.RunID, client.Name())
	}
	return errors.Join(errs...)
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, client := range r.clients {
		if closer, ok := client.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Printf("⚠️ Error closing client: %v\n", err)
			}
		}
	}
	r.clients = make([]Interface, 0)
}

// Load builds and registers every enabled client of cfgs.
func (r *Registry) Load(cfgs []Config) error {
	for _, cfg := range cfgs {
		if !cfg.Enabled {
			log.Printf("⏭️ Client %s is disabled, skipping\n", cfg.Type)
			continue
		}
		client, err := CreateClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to create %s client: %w", cfg.Type, err)
		}
		r.Register(client)
		log.Printf("✅ %s client initialized\n", cfg.Type)
	}
	return nil
}

func CreateClient(cfg Config) (Interface, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("client %s is disabled", cfg.Type)
	}

	switch cfg.Type {
	case "discord":
		return NewDiscordClientFromConfig(cfg.Config)
	default:
		return nil, fmt.Errorf("unknown client type: %s", cfg.Type)
	}
}
