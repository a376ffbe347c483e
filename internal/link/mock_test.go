package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockChannelSendRecordsFrame(t *testing.T) {
	m := NewMockChannel(2)
	ch := m.Channel()

	require.NoError(t, ch.Sender.Send([]byte{1, 2, 3}))
	select {
	case got := <-m.Sent:
		assert.Equal(t, []byte{1, 2, 3}, got)
	default:
		t.Fatal("expected the sent frame to be recorded")
	}
}

func TestMockChannelInjectAndReadFrame(t *testing.T) {
	m := NewMockChannel(2)
	ch := m.Channel()

	m.Inject([]byte{9, 9})
	got, err := ch.Receiver.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, got)
}

func TestMockChannelCloseYieldsEOF(t *testing.T) {
	m := NewMockChannel(1)
	ch := m.Channel()
	m.Close()

	_, err := ch.Receiver.ReadFrame()
	assert.Error(t, err)
}

func TestMockChannelSendCopiesBuffer(t *testing.T) {
	m := NewMockChannel(1)
	frame := []byte{1, 2, 3}
	require.NoError(t, m.Send(frame))
	frame[0] = 0xff // mutate the caller's buffer after sending

	got := <-m.Sent
	assert.Equal(t, byte(1), got[0], "Send must copy the frame, not alias the caller's slice")
}
