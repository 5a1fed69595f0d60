package dialog

import (
	"sync"
	"testing"
)

func TestLockerSerializesUser(t *testing.T) {
	l := NewLocker()
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(1)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
	if n := l.size(); n != 0 {
		t.Errorf("locks left after release = %d, want 0", n)
	}
}

func TestLockerIndependentUsers(t *testing.T) {
	l := NewLocker()
	unlock1 := l.Lock(1)
	done := make(chan struct{})
	go func() {
		unlock2 := l.Lock(2)
		unlock2()
		close(done)
	}()
	<-done // не должно зависнуть, пока держим пользователя 1
	unlock1()
}
