package qtest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"deedles.dev/textq"
	"deedles.dev/textq/internal/alloc"
	"github.com/rs/zerolog"
)

var (
	errNoQueue     = errors.New("no queue, use new first")
	errEmpty       = errors.New("queue is empty")
	errUnknownCmd  = errors.New("unknown command")
	errBadArgs     = errors.New("bad arguments")
	errValMismatch = errors.New("removed value mismatch")
)

// interp runs qtest scripts. Each line holds one command and its
// whitespace-separated arguments. Blank lines and lines starting with
// # are skipped.
type interp struct {
	logger  *zerolog.Logger
	out     io.Writer
	cfg     *Config
	tracker *alloc.Tracker
	m       *metrics

	q *textq.Queue

	cmds       map[string]func([]string) error
	failed     int
	violations int
}

func newInterp(cfg *Config, out io.Writer, logger *zerolog.Logger) *interp {
	tracker := alloc.NewTracker(cfg.Alloc.FailRate, cfg.Alloc.Seed)
	it := &interp{
		logger:  logger,
		out:     out,
		cfg:     cfg,
		tracker: tracker,
		m:       newMetrics(tracker),
	}
	it.cmds = map[string]func([]string) error{
		"new":     it.cmdNew,
		"free":    it.cmdFree,
		"ih":      it.insert(false),
		"it":      it.insert(true),
		"rh":      it.remove(false),
		"rt":      it.remove(true),
		"size":    it.cmdSize,
		"dm":      it.cmdDeleteMid,
		"dedup":   it.cmdDeleteDup,
		"swap":    it.queueOp((*textq.Queue).Swap),
		"reverse": it.queueOp((*textq.Queue).Reverse),
		"sort":    it.queueOp((*textq.Queue).Sort),
		"show":    it.cmdShow,
		"fail":    it.cmdFail,
	}
	return it
}

// Run executes every command read from r. Failing commands are logged
// and counted but do not stop the run; only a read error does.
func (it *interp) Run(r io.Reader) error {
	s := bufio.NewScanner(r)
	for lineNum := 1; s.Scan(); lineNum++ {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		it.exec(lineNum, strings.Fields(line))
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read script, %w", err)
	}
	return nil
}

func (it *interp) exec(lineNum int, args []string) {
	name := args[0]
	logger := it.logger.With().Int("line", lineNum).Str("cmd", name).Logger()

	var err error
	label := name
	cmd, ok := it.cmds[name]
	if ok {
		err = cmd(args[1:])
	} else {
		label = "unknown"
		err = fmt.Errorf("%w %q", errUnknownCmd, name)
	}

	if err != nil {
		it.failed++
		logger.Warn().Err(err).Strs("args", args[1:]).Msg("command failed")
	} else {
		logger.Debug().Strs("args", args[1:]).Msg("command done")
	}

	if it.q != nil {
		if cerr := it.q.Check(); cerr != nil {
			it.violations++
			it.m.violations.Inc()
			logger.Error().Err(cerr).Msg("queue structure is broken")
		}
	}
	it.m.observe(label, err, it.q.Size())
}

// Close frees the queue, if one is still open, and reports whether
// any storage was left behind.
func (it *interp) Close() error {
	it.q.Free()
	it.q = nil

	blocks, bytes := it.tracker.Live()
	if blocks != 0 {
		it.logger.Error().Int("blocks", blocks).Int("bytes", bytes).Msg("storage leaked")
		return fmt.Errorf("%d blocks (%d bytes) still allocated", blocks, bytes)
	}
	return nil
}

func (it *interp) printf(format string, args ...any) {
	fmt.Fprintf(it.out, format, args...)
}

func (it *interp) cmdNew(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if it.q != nil {
		it.q.Free()
		it.q = nil
	}

	q, err := textq.New(textq.WithAllocator(it.tracker))
	if err != nil {
		return err
	}
	it.q = q
	return it.cmdShow(nil)
}

func (it *interp) cmdFree(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if it.q == nil {
		return errNoQueue
	}
	it.q.Free()
	it.q = nil
	return it.cmdShow(nil)
}

func (it *interp) insert(tail bool) func([]string) error {
	return func(args []string) error {
		if len(args) < 1 || len(args) > 2 {
			return errBadArgs
		}
		n := 1
		if len(args) == 2 {
			var err error
			n, err = strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("%w: repeat count %q", errBadArgs, args[1])
			}
		}
		if it.q == nil {
			return errNoQueue
		}

		insert := it.q.InsertHead
		if tail {
			insert = it.q.InsertTail
		}
		for i := range n {
			if err := insert(args[0]); err != nil {
				return fmt.Errorf("insert %d of %d: %w", i+1, n, err)
			}
		}
		return it.cmdShow(nil)
	}
}

func (it *interp) remove(tail bool) func([]string) error {
	return func(args []string) error {
		if len(args) > 1 {
			return errBadArgs
		}
		if it.q == nil {
			return errNoQueue
		}

		buf := make([]byte, it.cfg.Remove.BufSize)
		remove := it.q.RemoveHead
		if tail {
			remove = it.q.RemoveTail
		}
		e := remove(buf)
		if e == nil {
			return errEmpty
		}
		e.Release()

		got := buf
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			got = buf[:i]
		}
		it.printf("Removed %s from queue\n", got)

		if len(args) == 1 && string(got) != args[0] {
			return fmt.Errorf("%w: got %q, want %q", errValMismatch, got, args[0])
		}
		return it.cmdShow(nil)
	}
}

func (it *interp) cmdSize(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if it.q == nil {
		return errNoQueue
	}
	it.printf("Queue size = %d\n", it.q.Size())
	return nil
}

func (it *interp) cmdDeleteMid(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if !it.q.DeleteMid() {
		if it.q == nil {
			return errNoQueue
		}
		return errEmpty
	}
	return it.cmdShow(nil)
}

func (it *interp) cmdDeleteDup(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if !it.q.DeleteDup() {
		return errNoQueue
	}
	return it.cmdShow(nil)
}

func (it *interp) queueOp(op func(*textq.Queue)) func([]string) error {
	return func(args []string) error {
		if len(args) != 0 {
			return errBadArgs
		}
		if it.q == nil {
			return errNoQueue
		}
		op(it.q)
		return it.cmdShow(nil)
	}
}

func (it *interp) cmdShow(args []string) error {
	if len(args) != 0 {
		return errBadArgs
	}
	if it.q == nil {
		it.printf("q = NULL\n")
		return nil
	}

	var sb strings.Builder
	sb.WriteString("q = [")
	first := true
	for v := range it.q.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(v)
	}
	sb.WriteString("]\n")
	it.printf("%s", sb.String())
	return nil
}

func (it *interp) cmdFail(args []string) error {
	if len(args) != 1 {
		return errBadArgs
	}
	p, err := strconv.ParseFloat(args[0], 64)
	if err != nil || p < 0 || p > 1 {
		return fmt.Errorf("%w: fail rate %q", errBadArgs, args[0])
	}
	it.tracker.SetFailRate(p)
	return nil
}
