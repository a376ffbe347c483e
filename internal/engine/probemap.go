package engine

import (
	"sync"

	"neoscan/internal/errs"
	"neoscan/internal/model"
)

// ProbeMap is the rendezvous table between in-flight raw-mode probes
// and the Listener: one entry per probe, keyed by (source port, target
// port), holding the one-shot channel the listener delivers a decoded
// status on. Insertion order is irrelevant; the listener never removes
// an entry, only the probe that registered it does, after waking.
type ProbeMap struct {
	mu      sync.Mutex
	entries map[model.ProbeKey]chan model.PortStatus
}

func NewProbeMap() *ProbeMap {
	return &ProbeMap{entries: make(map[model.ProbeKey]chan model.PortStatus)}
}

// Register inserts a fresh delivery channel for key, overwriting any
// existing entry. A ProbeKey collision is not reported: the earlier
// probe's channel no longer receives deliveries and that probe ends on
// its timeout.
func (p *ProbeMap) Register(key model.ProbeKey) (chan model.PortStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.entries == nil {
		return nil, errs.ErrProbeRegister
	}
	ch := make(chan model.PortStatus, 1)
	p.entries[key] = ch
	return ch, nil
}

// Remove deletes key's entry; it is the finalizing probe's
// responsibility to call this after delivery or timeout.
func (p *ProbeMap) Remove(key model.ProbeKey) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, key)
}

// deliver looks up key and, if present, attempts a non-blocking send
// of status. A full channel or a missing entry is silently dropped —
// this is the Listener's only interaction with the map, and it must
// never block beyond the lookup itself.
func (p *ProbeMap) deliver(key model.ProbeKey, status model.PortStatus) {
	p.mu.Lock()
	ch, ok := p.entries[key]
	p.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- status:
	default:
	}
}
