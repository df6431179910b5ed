package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"podtube/internal/utils/logging"
)

// streamSource streams playlist entries from a lazy-playlist subprocess,
// one JSON document per line. Halting kills the subprocess, which is what
// actually stops further page fetches.
type streamSource struct {
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	scanner  *bufio.Scanner
	haltOnce sync.Once
	done     bool
}

func newStreamSource(ctx context.Context, path string, args []string) (*streamSource, error) {
	if _, err := exec.LookPath(path); err != nil {
		return nil, fmt.Errorf("%s command not found: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, path, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", path, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &streamSource{
		cmd:     cmd,
		cancel:  cancel,
		scanner: scanner,
	}, nil
}

// Next returns the next streamed entry, or (nil, nil) once the subprocess
// output is exhausted.
func (s *streamSource) Next() (*VideoTree, error) {
	if s.done {
		return nil, nil
	}

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		entry := &VideoTree{}
		if err := json.Unmarshal(line, entry); err != nil {
			return nil, fmt.Errorf("decoding streamed entry: %w", err)
		}
		return entry, nil
	}

	if err := s.scanner.Err(); err != nil {
		s.finish()
		return nil, err
	}

	s.finish()
	return nil, nil
}

// Halt stops the producer. Any entries not yet read are abandoned and no
// further pages are fetched.
func (s *streamSource) Halt() {
	s.haltOnce.Do(func() {
		s.done = true
		s.cancel()
		if err := s.cmd.Wait(); err != nil {
			logging.D(2, "entry stream subprocess ended: %v", err)
		}
	})
}

// finish reaps the subprocess after natural exhaustion.
func (s *streamSource) finish() {
	s.haltOnce.Do(func() {
		s.done = true
		if err := s.cmd.Wait(); err != nil {
			logging.E("entry stream subprocess failed: %v", err)
		}
		s.cancel()
	})
}
