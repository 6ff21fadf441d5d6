package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ninehex/nhsim/pkg/logging"
)

// Client drives a worker subprocess (this simulation's own `cmd/nhsim
// -worker` or a C reference build) over the stdin/stdout protocol.
type Client struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Scanner
	breaker *CircuitBreaker

	mu sync.Mutex
	g  *errgroup.Group
}

// Start launches path as a worker subprocess. Stderr is pumped to
// logging concurrently via errgroup so a chatty reference build never
// blocks on a full pipe.
func Start(ctx context.Context, path string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("worker: starting %s: %w", path, err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			logging.Warn("worker stderr", "line", sc.Text())
		}
		return nil
	})

	// A GetStateJson response carries a full level grid and RNG state,
	// far past bufio.Scanner's default token limit.
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Client{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  sc,
		breaker: NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		g:       g,
	}, nil
}

// Send writes req as a single JSON line and waits for the matching
// "JSON:"-prefixed response, with circuit-breaker protection against a
// hung or crash-looping subprocess.
func (c *Client) Send(req Request) (Response, error) {
	return c.breaker.Call(func() (Response, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		data, err := json.Marshal(req)
		if err != nil {
			return Response{}, fmt.Errorf("worker: encoding request: %w", err)
		}
		if _, err := c.stdin.Write(append(data, '\n')); err != nil {
			return Response{}, fmt.Errorf("worker: writing request: %w", err)
		}

		for c.stdout.Scan() {
			line := c.stdout.Text()
			if !strings.HasPrefix(line, responseLinePrefix) {
				continue
			}
			var resp Response
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, responseLinePrefix)), &resp); err != nil {
				return Response{}, fmt.Errorf("worker: decoding response: %w", err)
			}
			if resp.Type == RespError {
				return resp, fmt.Errorf("worker: %s", resp.Str)
			}
			return resp, nil
		}
		if err := c.stdout.Err(); err != nil {
			return Response{}, fmt.Errorf("worker: reading response: %w", err)
		}
		return Response{}, fmt.Errorf("worker: subprocess closed stdout")
	})
}

// Close sends Exit, closes stdin, and waits for the subprocess and its
// stderr pump to finish.
func (c *Client) Close() error {
	_, _ = c.Send(Request{Type: ReqExit})
	if err := c.stdin.Close(); err != nil {
		logging.Warn("worker: closing stdin", "error", err)
	}
	waitErr := c.cmd.Wait()
	pumpErr := c.g.Wait()
	if waitErr != nil {
		return fmt.Errorf("worker: subprocess exit: %w", waitErr)
	}
	return pumpErr
}
