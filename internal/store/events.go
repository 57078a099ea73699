package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-page-builder/models"
)

// dispatcher fans option-updated events out to subscribed listeners.
type dispatcher struct {
	mu        sync.RWMutex
	listeners []OptionListener
}

// Subscribe implements [EventSource].
func (d *dispatcher) Subscribe(listener OptionListener) {
	if listener == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// publish calls every listener in subscription order. The lock is not held
// while listeners run, so a listener may write to the host and re-enter publish.
// Listener failures come back joined and wrapped in ErrOptionListener.
func (d *dispatcher) publish(ctx context.Context, event models.OptionUpdatedEvent) error {
	d.mu.RLock()
	listeners := make([]OptionListener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	var errs []error
	for _, listener := range listeners {
		if err := listener(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOptionListener, errors.Join(errs...))
}
