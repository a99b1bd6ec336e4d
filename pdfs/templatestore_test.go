package pdfs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore[Font]()
	store.Store("titulo", Font{Family: "Times", Style: "B", Size: 16})
	store.Store("cuerpo", Font{Family: "Times", Size: 9})

	f, ok := store.Get("titulo")
	assert.True(t, ok)
	assert.Equal(t, 16.0, f.Size)
	assert.Equal(t, []string{"cuerpo", "titulo"}, store.Keys())

	store.Remove("titulo")
	_, ok = store.Get("titulo")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestTemplateStore_Concurrent(t *testing.T) {
	store := NewTemplateStore[int]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Store(fmt.Sprint(i%10), i)
			store.Get(fmt.Sprint(i % 7))
			store.Keys()
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, store.Len())
}
