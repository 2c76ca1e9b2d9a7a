package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Stream re-invokes the extractor writing the selected media to stdout
// and returns that stream unconsumed. Nothing is buffered here; the
// caller pipes it to its own destination. Spawn failures return an
// error, mid-stream process failures surface on the reader.
func (c *Client) Stream(ctx context.Context, contentURL string, formatID string, opts *Options) (io.ReadCloser, error) {
	args := []string{"-o", "-"}
	if formatID != "" {
		args = append(args, "-f", formatID)
	}
	args = appendOptions(args, opts)
	args = append(args, contentURL)

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start extractor: %w", err)
	}
	return &processStream{pipe: stdout, cmd: cmd, stderr: &stderr}, nil
}

// processStream converts subprocess failure into a stream-level error:
// a nonzero exit replaces the final EOF so partially delivered streams
// still report what went wrong.
type processStream struct {
	pipe   io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer

	waitOnce sync.Once
	waitErr  error
}

func (s *processStream) Read(p []byte) (int, error) {
	n, err := s.pipe.Read(p)
	if err == io.EOF {
		if waitErr := s.wait(); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

func (s *processStream) Close() error {
	s.pipe.Close()
	if s.cmd.Process != nil {
		// the consumer may abandon the stream mid-download
		s.cmd.Process.Kill()
	}
	s.wait()
	return nil
}

func (s *processStream) wait() error {
	s.waitOnce.Do(func() {
		if err := s.cmd.Wait(); err != nil {
			message := errorLines(s.stderr.String())
			if message == "" {
				message = err.Error()
			}
			s.waitErr = fmt.Errorf("extractor stream failed: %s", strings.TrimSpace(message))
		}
	})
	return s.waitErr
}
