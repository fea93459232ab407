package ptyctl

import "testing"

// newTestController builds a Controller whose chunk channel we can feed
// directly, bypassing Spawn/xpty so Read's residual-queue logic can be
// exercised without a real child process.
func newTestController() *Controller {
	return &Controller{
		chunks: make(chan []byte, chunkQueueCapacity),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		alive:  true,
	}
}

func TestReadWouldBlockWhenEmpty(t *testing.T) {
	c := newTestController()
	buf := make([]byte, 10)
	n, err := c.Read(buf)
	if err != ErrWouldBlock || n != 0 {
		t.Fatalf("Read() = %d,%v, want 0,ErrWouldBlock", n, err)
	}
}

func TestReadResidualQueueNeverDropsBytes(t *testing.T) {
	c := newTestController()
	c.chunks <- []byte("ABCDEFGHIJ") // 10 bytes

	var got []byte
	buf := make([]byte, 4)
	for len(got) < 10 {
		n, err := c.Read(buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Fatal("Read returned 0 bytes with residual still pending")
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != "ABCDEFGHIJ" {
		t.Fatalf("got %q, want %q (no bytes dropped across small-buffer reads)", got, "ABCDEFGHIJ")
	}
}

func TestReadResidualThenNextChunk(t *testing.T) {
	c := newTestController()
	c.chunks <- []byte("AB")
	c.chunks <- []byte("CD")

	buf := make([]byte, 1)
	var got []byte
	for i := 0; i < 4; i++ {
		n, err := c.Read(buf)
		if err != nil {
			t.Fatalf("unexpected error at step %d: %v", i, err)
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != "ABCD" {
		t.Fatalf("got %q, want %q", got, "ABCD")
	}
}

func TestReadEOFWhenChannelClosed(t *testing.T) {
	c := newTestController()
	close(c.chunks)

	n, err := c.Read(make([]byte, 10))
	if err != nil || n != 0 {
		t.Fatalf("Read() after close = %d,%v, want 0,nil (EOF)", n, err)
	}
}

func TestIsAliveReflectsExit(t *testing.T) {
	c := newTestController()
	if !c.IsAlive() {
		t.Fatal("expected alive immediately after construction")
	}
	c.aliveMu.Lock()
	c.alive = false
	c.aliveMu.Unlock()
	if c.IsAlive() {
		t.Fatal("expected not alive after marking exited")
	}
}
