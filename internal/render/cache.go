package render

// The size-dependent GPU resources are cached lazily: a window event
// only invalidates, and the next frame that needs a resource allocates
// it at the then-current size. Ensure calls also compare the cached
// size against the requested one, so a stale-sized survivor can never
// be handed out.

// stagingSet is the window-sized copy target for the captured frame.
type stagingSet struct {
	Texture uintptr
	SRV     uintptr
	W, H    uint32
}

// extendedSet is the edge-padded texture the effects sample, readable
// as an SRV and writable by the extend pass as a UAV.
type extendedSet struct {
	Texture uintptr
	SRV     uintptr
	UAV     uintptr
	W, H    uint32
}

// textureAllocator creates the size-dependent resources and releases
// individual handles. The Windows implementation sits on the D3D11
// device; tests substitute a fake.
type textureAllocator interface {
	AllocStaging(w, h uint32) (stagingSet, error)
	AllocExtended(w, h uint32) (extendedSet, error)
	AllocRenderTarget() (uintptr, error)
	Free(handle uintptr)
}

// Cache owns the size-dependent resource set.
type Cache struct {
	alloc    textureAllocator
	staging  *stagingSet
	extended *extendedSet
	rtv      uintptr
}

// NewCache returns an empty cache backed by alloc.
func NewCache(alloc textureAllocator) *Cache {
	return &Cache{alloc: alloc}
}

// Staging returns the current staging set, allocating or reallocating
// it when absent or sized differently.
func (c *Cache) Staging(w, h uint32) (stagingSet, error) {
	if c.staging != nil && c.staging.W == w && c.staging.H == h {
		return *c.staging, nil
	}
	c.freeStaging()
	s, err := c.alloc.AllocStaging(w, h)
	if err != nil {
		return stagingSet{}, err
	}
	c.staging = &s
	return s, nil
}

// Extended returns the current extended set, allocating or reallocating
// it when absent or sized differently.
func (c *Cache) Extended(w, h uint32) (extendedSet, error) {
	if c.extended != nil && c.extended.W == w && c.extended.H == h {
		return *c.extended, nil
	}
	c.freeExtended()
	e, err := c.alloc.AllocExtended(w, h)
	if err != nil {
		return extendedSet{}, err
	}
	c.extended = &e
	return e, nil
}

// RenderTarget returns the render-target view over the current back
// buffer, allocating it when absent. The back buffer tracks the swap
// chain, so there is no size key; InvalidateAll before ResizeBuffers.
func (c *Cache) RenderTarget() (uintptr, error) {
	if c.rtv != 0 {
		return c.rtv, nil
	}
	rtv, err := c.alloc.AllocRenderTarget()
	if err != nil {
		return 0, err
	}
	c.rtv = rtv
	return rtv, nil
}

// InvalidateAll releases every cached resource. Called on resize and on
// device loss; the next frame recreates what it needs.
func (c *Cache) InvalidateAll() {
	c.freeStaging()
	c.freeExtended()
	if c.rtv != 0 {
		c.alloc.Free(c.rtv)
		c.rtv = 0
	}
}

func (c *Cache) freeStaging() {
	if c.staging == nil {
		return
	}
	c.alloc.Free(c.staging.SRV)
	c.alloc.Free(c.staging.Texture)
	c.staging = nil
}

func (c *Cache) freeExtended() {
	if c.extended == nil {
		return
	}
	c.alloc.Free(c.extended.UAV)
	c.alloc.Free(c.extended.SRV)
	c.alloc.Free(c.extended.Texture)
	c.extended = nil
}
