package render

import "testing"

// fakeAllocator hands out unique handles and records what is freed.
type fakeAllocator struct {
	next    uintptr
	freed   map[uintptr]bool
	allocs  int
	failAll bool
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{next: 1, freed: map[uintptr]bool{}}
}

func (f *fakeAllocator) handle() uintptr {
	h := f.next
	f.next++
	return h
}

func (f *fakeAllocator) AllocStaging(w, h uint32) (stagingSet, error) {
	if f.failAll {
		return stagingSet{}, errAlloc
	}
	f.allocs++
	return stagingSet{Texture: f.handle(), SRV: f.handle(), W: w, H: h}, nil
}

func (f *fakeAllocator) AllocExtended(w, h uint32) (extendedSet, error) {
	if f.failAll {
		return extendedSet{}, errAlloc
	}
	f.allocs++
	return extendedSet{Texture: f.handle(), SRV: f.handle(), UAV: f.handle(), W: w, H: h}, nil
}

func (f *fakeAllocator) AllocRenderTarget() (uintptr, error) {
	if f.failAll {
		return 0, errAlloc
	}
	f.allocs++
	return f.handle(), nil
}

func (f *fakeAllocator) Free(h uintptr) {
	if f.freed[h] {
		panic("double free")
	}
	f.freed[h] = true
}

var errAlloc = &allocError{}

type allocError struct{}

func (*allocError) Error() string { return "alloc failed" }

func TestCacheStagingIdempotent(t *testing.T) {
	alloc := newFakeAllocator()
	c := NewCache(alloc)

	a, err := c.Staging(800, 600)
	if err != nil {
		t.Fatalf("Staging: %v", err)
	}
	b, err := c.Staging(800, 600)
	if err != nil {
		t.Fatalf("Staging: %v", err)
	}
	if a != b {
		t.Error("same-size ensure returned a different set")
	}
	if alloc.allocs != 1 {
		t.Errorf("allocated %d times, want 1", alloc.allocs)
	}
}

func TestCacheReallocatesOnSizeChange(t *testing.T) {
	alloc := newFakeAllocator()
	c := NewCache(alloc)

	a, err := c.Staging(800, 600)
	if err != nil {
		t.Fatalf("Staging: %v", err)
	}
	b, err := c.Staging(1024, 768)
	if err != nil {
		t.Fatalf("Staging: %v", err)
	}
	if b.W != 1024 || b.H != 768 {
		t.Errorf("new set sized %dx%d, want 1024x768", b.W, b.H)
	}
	if !alloc.freed[a.Texture] || !alloc.freed[a.SRV] {
		t.Error("stale staging set not freed on size change")
	}
	if alloc.freed[b.Texture] {
		t.Error("current staging set was freed")
	}
}

func TestCacheExtendedSizeKey(t *testing.T) {
	alloc := newFakeAllocator()
	c := NewCache(alloc)

	a, err := c.Extended(850, 600)
	if err != nil {
		t.Fatalf("Extended: %v", err)
	}
	if _, err := c.Extended(850, 600); err != nil {
		t.Fatalf("Extended: %v", err)
	}
	if alloc.allocs != 1 {
		t.Errorf("allocated %d times for same size, want 1", alloc.allocs)
	}
	if _, err := c.Extended(800, 600); err != nil {
		t.Fatalf("Extended: %v", err)
	}
	if !alloc.freed[a.Texture] || !alloc.freed[a.SRV] || !alloc.freed[a.UAV] {
		t.Error("stale extended set not fully freed")
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	alloc := newFakeAllocator()
	c := NewCache(alloc)

	s, _ := c.Staging(800, 600)
	e, _ := c.Extended(850, 600)
	r, err := c.RenderTarget()
	if err != nil {
		t.Fatalf("RenderTarget: %v", err)
	}

	c.InvalidateAll()
	for _, h := range []uintptr{s.Texture, s.SRV, e.Texture, e.SRV, e.UAV, r} {
		if !alloc.freed[h] {
			t.Errorf("handle %d survived InvalidateAll", h)
		}
	}

	// Everything is recreated lazily afterwards.
	before := alloc.allocs
	if _, err := c.Staging(800, 600); err != nil {
		t.Fatalf("Staging after invalidate: %v", err)
	}
	if _, err := c.RenderTarget(); err != nil {
		t.Fatalf("RenderTarget after invalidate: %v", err)
	}
	if alloc.allocs != before+2 {
		t.Errorf("allocs after invalidate = %d, want %d", alloc.allocs, before+2)
	}

	// Double invalidate must not double-free (fake panics if it does).
	c.InvalidateAll()
	c.InvalidateAll()
}

func TestCacheAllocFailureLeavesCacheEmpty(t *testing.T) {
	alloc := newFakeAllocator()
	alloc.failAll = true
	c := NewCache(alloc)

	if _, err := c.Staging(800, 600); err == nil {
		t.Fatal("Staging succeeded with failing allocator")
	}
	alloc.failAll = false
	if _, err := c.Staging(800, 600); err != nil {
		t.Fatalf("Staging after failure cleared: %v", err)
	}
}
