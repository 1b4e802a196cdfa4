package system

import (
	"image"
	"sync"
)

// ImagePool reuses *image.NRGBA frame buffers of equal bounds to keep the
// garbage collector out of batch runs.
type ImagePool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewImagePool()

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Rectangle]*sync.Pool)}
}

// GetImage returns a buffer for rect from the shared pool. Its contents are
// undefined; callers overwrite every pixel.
func GetImage(rect image.Rectangle) *image.NRGBA {
	return globalPool.Get(rect)
}

// PutImage hands img back to the shared pool.
func PutImage(img *image.NRGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.NRGBA {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return image.NewNRGBA(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.NRGBA)
}

func (p *ImagePool) Put(img *image.NRGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
