package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_Send(t *testing.T) {
	t.Run("should report unknown connections", func(t *testing.T) {
		hub := NewHub(discardLogger(), nil)

		assert.False(t, hub.Send("never-connected", []byte("hello")))
	})

	t.Run("should report removed connections", func(t *testing.T) {
		hub := NewHub(discardLogger(), nil)
		client := newClient("conn-1", nil, hub, nil)
		hub.Add(client)
		hub.Remove(client)

		assert.False(t, hub.Send("conn-1", []byte("hello")))
	})

	t.Run("should drop when the client buffer is full", func(t *testing.T) {
		hub := NewHub(discardLogger(), nil)
		client := newClient("conn-1", nil, hub, nil)
		hub.Add(client)

		for i := 0; i < sendBufferSize; i++ {
			assert.True(t, hub.Send("conn-1", []byte("fill")))
		}
		assert.False(t, hub.Send("conn-1", []byte("overflow")))
	})

	t.Run("should survive sends racing removal", func(t *testing.T) {
		hub := NewHub(discardLogger(), nil)

		const clients = 8
		const sendsPerClient = 2000

		attached := make([]*Client, 0, clients)
		for i := 0; i < clients; i++ {
			client := newClient(fmt.Sprintf("conn-%d", i), nil, hub, nil)
			hub.Add(client)
			attached = append(attached, client)

			// Keep the buffer from filling so sends reach the channel.
			go func(c *Client) {
				for range c.send {
				}
			}(client)
		}

		var wg sync.WaitGroup
		for _, client := range attached {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < sendsPerClient; i++ {
					hub.Send(id, []byte("tick"))
				}
			}(client.ID())
		}
		for _, client := range attached {
			wg.Add(1)
			go func(c *Client) {
				defer wg.Done()
				hub.Remove(c)
			}(client)
		}

		wg.Wait()
		assert.Equal(t, 0, hub.ClientCount())
	})
}
