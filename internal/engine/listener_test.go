package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoscan/internal/link"
	"neoscan/internal/model"
)

// TestListenerFiltersBySourceAndDestination asserts spec.md's Listener
// filter: a reply is only routed to a waiting probe when its IPv4
// source is the configured target and its destination is our
// interface address. Everything else must be silently dropped.
func TestListenerFiltersBySourceAndDestination(t *testing.T) {
	h := newHarness(model.Syn)
	defer h.stop()

	key := model.ProbeKey{SourcePort: 60010, TargetPort: 80}
	ch, err := h.probes.Register(key)
	require.NoError(t, err)

	spoofedSrc := targetIP.To4()
	wrongDst := []byte{10, 0, 0, 99}
	reply, err := buildTCPReply(targetMAC, ifaceMAC, spoofedSrc, wrongDst, 80, key.SourcePort, true, true, false)
	require.NoError(t, err)
	h.mock.Inject(reply)

	select {
	case <-ch:
		t.Fatal("listener must not deliver a reply whose destination isn't our interface address")
	case <-time.After(100 * time.Millisecond):
	}

	wrongSrc := []byte{10, 0, 0, 77}
	reply2, err := buildTCPReply(targetMAC, ifaceMAC, wrongSrc, ifaceIP, 80, key.SourcePort, true, true, false)
	require.NoError(t, err)
	h.mock.Inject(reply2)

	select {
	case <-ch:
		t.Fatal("listener must not deliver a reply from an IP other than the configured target")
	case <-time.After(100 * time.Millisecond):
	}

	goodReply, err := buildTCPReply(targetMAC, ifaceMAC, targetIP, ifaceIP, 80, key.SourcePort, true, true, false)
	require.NoError(t, err)
	h.mock.Inject(goodReply)

	select {
	case status := <-ch:
		assert.Equal(t, model.Open, status)
	case <-time.After(time.Second):
		t.Fatal("expected a delivered status for a correctly addressed reply")
	}
}

func TestListenerStopEndsRun(t *testing.T) {
	mock := link.NewMockChannel(4)
	probes := NewProbeMap()
	listener := NewListener(mock, probes, targetIP, ifaceIP, model.Syn)

	done := make(chan struct{})
	go func() {
		listener.Run()
		close(done)
	}()
	listener.Stop()
	mock.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after Stop")
	}
}
