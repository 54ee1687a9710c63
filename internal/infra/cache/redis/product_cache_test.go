package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClient_ParsesURL(t *testing.T) {
	client := NewClient("redis://:secret@cache:6380/2")
	defer client.Close()

	opts := client.Options()
	require.Equal(t, "cache:6380", opts.Addr)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)
}

func TestNewClient_BareAddress(t *testing.T) {
	client := NewClient("localhost:6379")
	defer client.Close()

	opts := client.Options()
	require.Equal(t, "localhost:6379", opts.Addr)
	require.Equal(t, 10, opts.PoolSize)
	require.Equal(t, 5*time.Second, opts.DialTimeout)
}

func TestKey(t *testing.T) {
	require.Equal(t, "product:42", key(42))
}
