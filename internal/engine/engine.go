// Package engine is the scan orchestrator: it opens the shared
// datalink channel, resolves the target MAC, launches the Listener,
// and runs one bounded-concurrency probe task per port.
package engine

import (
	"context"
	"net"
	"sync"

	"neoscan/internal/arp"
	"neoscan/internal/link"
	"neoscan/internal/logger"
	"neoscan/internal/model"
	"neoscan/internal/netcodec"
	"neoscan/internal/netiface"
)

// Engine owns a single scan's ProbeMap, ResultsMap and Listener for
// its whole lifetime.
type Engine struct {
	cfg     Config
	dev     *netiface.DeviceInterface
	probes  *ProbeMap
	results *ResultsMap
}

func New(cfg Config, dev *netiface.DeviceInterface) *Engine {
	return &Engine{
		cfg:     cfg,
		dev:     dev,
		probes:  NewProbeMap(),
		results: NewResultsMap(),
	}
}

// boundDevice adapts *netiface.DeviceInterface + a fixed target IP to
// the deviceView a raw probe needs to build its frame.
type boundDevice struct {
	dev    *netiface.DeviceInterface
	target net.IP
}

func (b boundDevice) Self() (net.HardwareAddr, net.IP) { return b.dev.MAC, b.dev.IPv4 }
func (b boundDevice) Peer() net.IP                     { return b.target }

// Run executes the full scan: steps 1-6 of spec.md §4.6.
func (e *Engine) Run(ctx context.Context) (*ResultsMap, error) {
	if !e.cfg.Mode.IsRaw() {
		return e.runConnect(ctx)
	}
	return e.runRaw(ctx)
}

func (e *Engine) runConnect(ctx context.Context) (*ResultsMap, error) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.cfg.Concurrency)

	for port := e.cfg.StartPort; ; port++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(p uint16) {
			defer wg.Done()
			defer func() { <-sem }()
			status := connectProbe(e.cfg.TargetIP, p, e.cfg.Timeout)
			if err := e.results.Set(p, status); err != nil {
				logger.Warnf("result record failed for port %d: %v", p, err)
			}
		}(port)
		if port == e.cfg.EndPort {
			break
		}
	}
	wg.Wait()
	return e.results, nil
}

func (e *Engine) runRaw(ctx context.Context) (*ResultsMap, error) {
	// ARP resolution runs over its own freshly opened channel, never the
	// scan's shared one (spec.md §4.4).
	targetMAC, err := arp.Resolve(e.dev, e.cfg.TargetIP, e.cfg.Timeout)
	if err != nil {
		logger.Warnf("arp resolution timed out, falling back to broadcast: %v", err)
		targetMAC = netcodec.BroadcastMAC
	}

	handle, err := e.dev.OpenDatalink(int(e.cfg.Timeout.Milliseconds()))
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	ch := link.Open(handle)

	listener := NewListener(ch.Receiver, e.probes, e.cfg.TargetIP, e.dev.IPv4, e.cfg.Mode)
	go listener.Run()
	defer listener.Stop()

	dev := boundDevice{dev: e.dev, target: e.cfg.TargetIP}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.cfg.Concurrency)

	for port := e.cfg.StartPort; ; port++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(p uint16) {
			defer wg.Done()
			defer func() { <-sem }()
			status := rawProbe(dev, ch, e.probes, targetMAC, e.cfg.Mode, p, e.cfg.Timeout)
			if err := e.results.Set(p, status); err != nil {
				logger.Warnf("result record failed for port %d: %v", p, err)
			}
		}(port)
		if port == e.cfg.EndPort {
			break
		}
	}
	wg.Wait()

	return e.results, nil
}
