package capture

import (
	"errors"
	"testing"
)

type fakeDuplicator struct {
	acquireErr  error
	releaseErr  error
	acquires    int
	releases    int
	closed      bool
	presentTime int64
}

func (f *fakeDuplicator) Acquire(timeoutMS uint32) (uintptr, FrameInfo, error) {
	f.acquires++
	if f.acquireErr != nil {
		return 0, FrameInfo{}, f.acquireErr
	}
	return uintptr(f.acquires), FrameInfo{PresentTime: f.presentTime, AccumulatedFrames: 1}, nil
}

func (f *fakeDuplicator) ReleaseFrame() error {
	f.releases++
	return f.releaseErr
}

func (f *fakeDuplicator) ScreenSize() (uint32, uint32) { return 1920, 1080 }

func (f *fakeDuplicator) Close() { f.closed = true }

func newFakeEngine(dup *fakeDuplicator) (*Engine, *int) {
	created := 0
	eng := NewEngine(func() (outputDuplicator, error) {
		created++
		return dup, nil
	}, nil)
	return eng, &created
}

func TestAcquireReleasePairing(t *testing.T) {
	dup := &fakeDuplicator{presentTime: 42}
	eng, created := newFakeEngine(dup)

	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if frame.Info.PresentTime != 42 {
		t.Errorf("PresentTime = %d, want 42", frame.Info.PresentTime)
	}
	if *created != 1 {
		t.Errorf("duplicator created %d times, want 1", *created)
	}

	if err := frame.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if dup.releases != 1 {
		t.Errorf("ReleaseFrame called %d times, want 1", dup.releases)
	}

	// Second release is a no-op.
	if err := frame.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	if dup.releases != 1 {
		t.Errorf("ReleaseFrame called %d times after double release, want 1", dup.releases)
	}
}

func TestAcquireRefusesOutstandingFrame(t *testing.T) {
	dup := &fakeDuplicator{}
	eng, _ := newFakeEngine(dup)

	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := eng.Acquire(16); err == nil {
		t.Fatal("second Acquire with frame outstanding succeeded")
	}
	if err := frame.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := eng.Acquire(16); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
}

func TestTimeoutPassesThrough(t *testing.T) {
	dup := &fakeDuplicator{acquireErr: ErrTimeout}
	eng, created := newFakeEngine(dup)

	if _, err := eng.Acquire(16); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Acquire error = %v, want ErrTimeout", err)
	}
	if dup.closed {
		t.Error("duplicator closed after timeout")
	}
	if *created != 1 {
		t.Errorf("duplicator created %d times, want 1", *created)
	}
}

func TestAccessLostDropsDuplicator(t *testing.T) {
	first := &fakeDuplicator{acquireErr: ErrAccessLost}
	second := &fakeDuplicator{}
	dups := []*fakeDuplicator{first, second}
	created := 0
	eng := NewEngine(func() (outputDuplicator, error) {
		d := dups[created]
		created++
		return d, nil
	}, nil)

	if _, err := eng.Acquire(16); !errors.Is(err, ErrAccessLost) {
		t.Fatalf("Acquire error = %v, want ErrAccessLost", err)
	}
	if !first.closed {
		t.Error("stale duplicator not closed on access loss")
	}

	// The next acquire builds a fresh duplicator and succeeds.
	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire after access loss: %v", err)
	}
	if created != 2 {
		t.Errorf("duplicator created %d times, want 2", created)
	}
	if err := frame.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestAccessLostDuringRelease(t *testing.T) {
	dup := &fakeDuplicator{releaseErr: ErrAccessLost}
	eng, _ := newFakeEngine(dup)

	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	// Access loss on release is absorbed; the duplicator is dropped.
	if err := frame.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !dup.closed {
		t.Error("duplicator not closed after access loss on release")
	}
}

func TestDeviceLostSurfaces(t *testing.T) {
	dup := &fakeDuplicator{acquireErr: ErrDeviceLost}
	eng, _ := newFakeEngine(dup)

	if _, err := eng.Acquire(16); !errors.Is(err, ErrDeviceLost) {
		t.Fatalf("Acquire error = %v, want ErrDeviceLost", err)
	}
}

func TestResetForcesRecreate(t *testing.T) {
	dup := &fakeDuplicator{}
	eng, created := newFakeEngine(dup)

	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := frame.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	eng.Reset()
	if !dup.closed {
		t.Error("duplicator not closed by Reset")
	}
	if _, err := eng.Acquire(16); err != nil {
		t.Fatalf("Acquire after Reset: %v", err)
	}
	if *created != 2 {
		t.Errorf("duplicator created %d times, want 2", *created)
	}
}

func TestScreenSize(t *testing.T) {
	dup := &fakeDuplicator{}
	eng, _ := newFakeEngine(dup)

	if w, h := eng.ScreenSize(); w != 0 || h != 0 {
		t.Errorf("ScreenSize before first acquire = %dx%d, want 0x0", w, h)
	}
	frame, err := eng.Acquire(16)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer frame.Release()
	if w, h := eng.ScreenSize(); w != 1920 || h != 1080 {
		t.Errorf("ScreenSize = %dx%d, want 1920x1080", w, h)
	}
}
