package rchan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/rchan/pkg/config"
)

func TestNewDefaultChannelUsesConfiguredBufferSize(t *testing.T) {
	defer Configure(config.DefaultConfig())

	Configure(&config.Config{DefaultBufferSize: 3})
	c := NewDefaultChannel[int]()

	require.NoError(t, c.Send(1, 0))
	require.NoError(t, c.Send(2, 0))
	require.NoError(t, c.Send(3, 0))
	assert.ErrorIs(t, c.Send(4, 0), ErrTimeout, "buffer of 3 should already be full")
}

func TestSendDefaultZeroTimeoutBlocksForever(t *testing.T) {
	defer Configure(config.DefaultConfig())
	Configure(&config.Config{DefaultBufferSize: 0, DefaultTimeout: 0})

	c := NewDefaultChannel[string]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, c.SendDefault("hello"))
	}()

	v, err := c.Receive(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	<-done
}

func TestReceiveDefaultHonorsConfiguredTimeout(t *testing.T) {
	defer Configure(config.DefaultConfig())
	Configure(&config.Config{DefaultTimeout: 10 * time.Millisecond})

	c := NewDefaultChannel[int]()

	_, err := c.ReceiveDefault()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConfigureNilIsNoOp(t *testing.T) {
	defer Configure(config.DefaultConfig())

	Configure(&config.Config{DefaultBufferSize: 7})
	Configure(nil)

	c := NewDefaultChannel[int]()
	for i := 0; i < 7; i++ {
		require.NoError(t, c.Send(i, 0))
	}
	assert.ErrorIs(t, c.Send(99, 0), ErrTimeout)
}
