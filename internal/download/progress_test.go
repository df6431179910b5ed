package download

import (
	"testing"

	"podtube/internal/backend"
)

type call struct {
	done     int64
	fragment int
	total    int64
}

func TestProgressAdapterAccumulatesFragments(t *testing.T) {
	var calls []call
	adapter := &progressAdapter{reporthook: func(done int64, fragment int, total int64) {
		calls = append(calls, call{done, fragment, total})
	}}

	// First fragment
	adapter.handle(backend.ProgressEvent{Status: backend.StatusDownloading, DownloadedBytes: 500, TotalBytes: 1000})
	adapter.handle(backend.ProgressEvent{Status: backend.StatusFinished, DownloadedBytes: 1000})
	// Second fragment restarts its byte counts from zero
	adapter.handle(backend.ProgressEvent{Status: backend.StatusDownloading, DownloadedBytes: 200, TotalBytes: 2000})

	want := []call{
		{500, 1, 1000},
		{1000, 1, 1000},
		{1200, 1, 3000},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d callbacks, got %d: %+v", len(want), len(calls), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("callback %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestProgressAdapterTotalFallbacks(t *testing.T) {
	var calls []call
	adapter := &progressAdapter{reporthook: func(done int64, fragment int, total int64) {
		calls = append(calls, call{done, fragment, total})
	}}

	// No exact total: fall back to the estimate
	adapter.handle(backend.ProgressEvent{Status: backend.StatusDownloading, DownloadedBytes: 10, TotalBytesEstimate: 400})
	// Neither total nor estimate: report 0
	adapter.handle(backend.ProgressEvent{Status: backend.StatusDownloading, DownloadedBytes: 20})

	if calls[0] != (call{10, 1, 400}) {
		t.Fatalf("expected estimate fallback, got %+v", calls[0])
	}
	if calls[1] != (call{20, 1, 0}) {
		t.Fatalf("expected zero total, got %+v", calls[1])
	}
}

func TestProgressAdapterIgnoresOtherEvents(t *testing.T) {
	var calls []call
	adapter := &progressAdapter{reporthook: func(done int64, fragment int, total int64) {
		calls = append(calls, call{done, fragment, total})
	}}

	adapter.handle(backend.ProgressEvent{Status: backend.StatusError})
	adapter.handle(backend.ProgressEvent{Status: backend.StatusUnknown})

	if len(calls) != 0 {
		t.Fatalf("expected no callbacks for error/unknown events, got %d", len(calls))
	}
	if adapter.prevBytes != 0 {
		t.Fatalf("error/unknown events must not touch the counter")
	}
}

func TestProgressAdapterNilHook(t *testing.T) {
	adapter := &progressAdapter{}

	// Must not panic, and finished events still accumulate
	adapter.handle(backend.ProgressEvent{Status: backend.StatusDownloading, DownloadedBytes: 5, TotalBytes: 10})
	adapter.handle(backend.ProgressEvent{Status: backend.StatusFinished, DownloadedBytes: 10})

	if adapter.prevBytes != 10 {
		t.Fatalf("expected counter 10, got %d", adapter.prevBytes)
	}
}
