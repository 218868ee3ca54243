package mt

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestScheduleAndTake(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	f := Schedule(p, "answer", func(report func(Progress)) (int, error) {
		return 42, nil
	})
	got, err := f.Take()
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("Take()=%d, expected 42", got)
	}
	if f.Progress().Kind != ProgressDone {
		t.Errorf("progress after completion: %+v", f.Progress())
	}
}

func TestTakeTwicePanics(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	f := Schedule(p, "x", func(report func(Progress)) (struct{}, error) {
		return struct{}{}, nil
	})
	if _, err := f.Take(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("second Take did not panic")
		}
	}()
	f.Take()
}

func TestErrorPropagation(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	f := Schedule(p, "boom", func(report func(Progress)) (int, error) {
		return 0, errors.New("boom")
	})
	if _, err := f.Take(); err == nil {
		t.Errorf("expected an error")
	}
}

func TestProgressReporting(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	step := make(chan struct{})
	f := Schedule(p, "slow", func(report func(Progress)) (int, error) {
		report(Progress{Kind: ProgressReading, NRead: 5, NSize: 10})
		<-step
		return 1, nil
	})

	// Wait for the task to publish its first progress report.
	for f.Progress().Kind == ProgressQueued {
		runtime.Gosched()
	}
	pr := f.Progress()
	if pr.Kind != ProgressReading || pr.NRead != 5 || pr.NSize != 10 {
		t.Errorf("progress=%+v", pr)
	}
	if pr.String() != "50%" {
		t.Errorf("progress string=%q", pr.String())
	}
	if f.IsComplete() {
		t.Errorf("future complete before task finished")
	}
	close(step)
	f.Take()
	if !f.IsComplete() {
		t.Errorf("future not complete after Take")
	}
}

func TestManyTasksAllComplete(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 64
	futures := make([]*Future[int], n)
	for i := 0; i < n; i++ {
		i := i
		futures[i] = Schedule(p, "task", func(report func(Progress)) (int, error) {
			return i * i, nil
		})
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, f := range futures {
			got, err := f.Take()
			if err != nil || got != i*i {
				t.Errorf("task %d: got %d err %v", i, got, err)
			}
		}
	}()
	wg.Wait()
}

// Schedule must never block the calling thread, however deep the
// backlog. With a single gated worker the whole burst has to queue.
func TestScheduleNeverBlocks(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	release := make(chan struct{})
	const n = 1000
	futures := make([]*Future[int], n)
	for i := 0; i < n; i++ {
		i := i
		futures[i] = Schedule(p, "burst", func(report func(Progress)) (int, error) {
			<-release
			return i, nil
		})
	}
	close(release)
	for i, f := range futures {
		got, err := f.Take()
		if err != nil || got != i {
			t.Fatalf("task %d: got %d err %v", i, got, err)
		}
	}
}

func TestReadFileProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	payload := make([]byte, 200*1024)
	for i := range payload {
		payload[i] = byte(i)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	var last Progress
	data, err := ReadFile(path, func(pr Progress) {
		if pr.NRead < last.NRead {
			t.Errorf("progress went backwards: %+v after %+v", pr, last)
		}
		last = pr
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(payload) {
		t.Fatalf("read %d bytes, expected %d", len(data), len(payload))
	}
	if last.NRead != int64(len(payload)) || last.NSize != int64(len(payload)) {
		t.Errorf("final progress %+v", last)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("/does/not/exist", func(Progress) {}); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestThreadStatus(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	if st := p.ThreadStatus(0); st != "idle" {
		t.Errorf("initial status %q", st)
	}
	if st := p.ThreadStatus(5); st != "" {
		t.Errorf("out of range status %q", st)
	}

	release := make(chan struct{})
	f := Schedule(p, "busywork", func(report func(Progress)) (int, error) {
		<-release
		return 0, nil
	})
	for p.ThreadStatus(0) != "busywork" {
		runtime.Gosched()
	}
	close(release)
	f.Take()
}
