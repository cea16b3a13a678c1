package utils

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_Write(t *testing.T) {
	t.Run("one notice per write", func(t *testing.T) {
		d := NewDeferredWriter("tzc: ")

		n, err := d.Write([]byte("store unavailable\n"))
		require.NoError(t, err)
		assert.Equal(t, 18, n)

		d.Printf("watcher disabled: %s", "too many files")

		var out bytes.Buffer
		require.NoError(t, d.Flush(&out))
		assert.Equal(t, "tzc: store unavailable\ntzc: watcher disabled: too many files\n", out.String())
	})

	t.Run("duplicates are kept once", func(t *testing.T) {
		d := NewDeferredWriter("")
		d.Printf("same")
		d.Printf("same")
		_, _ = d.Write([]byte(""))

		assert.Equal(t, 1, d.Len())
	})

	t.Run("concurrent writes are safe", func(t *testing.T) {
		d := NewDeferredWriter("")
		var wg sync.WaitGroup

		for i := range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Printf("notice %d", i)
			}()
		}

		wg.Wait()
		assert.Equal(t, 100, d.Len())
	})
}

func TestDeferredWriter_Flush(t *testing.T) {
	t.Run("clears after flush", func(t *testing.T) {
		d := NewDeferredWriter("")
		d.Printf("first")

		var out1 bytes.Buffer
		require.NoError(t, d.Flush(&out1))
		assert.Equal(t, "first\n", out1.String())

		var out2 bytes.Buffer
		require.NoError(t, d.Flush(&out2))
		assert.Empty(t, out2.String())
		assert.Equal(t, 0, d.Len())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var d DeferredWriter
		_, _ = fmt.Fprint(&d, "hello")

		var out bytes.Buffer
		require.NoError(t, d.Flush(&out))
		assert.Equal(t, "hello\n", out.String())
	})
}
