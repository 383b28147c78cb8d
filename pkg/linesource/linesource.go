// Package linesource reads text files one line at a time.
package linesource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxLineLength is the longest line a Reader accepts unless overridden.
const DefaultMaxLineLength = 1024 * 1024

const readBufferSize = 64 * 1024

// Reader yields the lines of an underlying stream in order. It keeps one
// line of lookahead so HasLine can answer without consuming anything.
//
// Lines longer than the configured maximum are read through and dropped;
// their line numbers are available from Skipped.
type Reader struct {
	name   string
	br     *bufio.Reader
	closer io.Closer
	max    int

	physical int // lines consumed from br so far
	lineNo   int // number of the line last returned by Line
	skipped  []int

	next    string
	nextNo  int
	hasNext bool
	err     error
}

// Option configures a Reader.
type Option func(*options)

type options struct {
	maxLineLength int
}

// WithMaxLineLength sets the longest line, in bytes and without its
// terminator, the Reader will return. Longer lines are skipped. Values <= 0
// keep the default.
func WithMaxLineLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineLength = n
		}
	}
}

// Open opens the file at path for line-by-line reading. The returned error
// wraps the underlying *fs.PathError, so errors.Is(err, fs.ErrNotExist) works.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	r := newReader(path, f, opts)
	r.closer = f
	return r, nil
}

// New wraps an arbitrary reader. Close is a no-op for readers created here.
func New(r io.Reader, opts ...Option) *Reader {
	return newReader("", r, opts)
}

func newReader(name string, r io.Reader, opts []Option) *Reader {
	o := options{maxLineLength: DefaultMaxLineLength}
	for _, opt := range opts {
		opt(&o)
	}
	lr := &Reader{name: name, br: bufio.NewReaderSize(r, readBufferSize), max: o.maxLineLength}
	lr.advance()
	return lr
}

// Name returns the path the Reader was opened from, or "" for New.
func (r *Reader) Name() string { return r.name }

// HasLine reports whether another line is available.
func (r *Reader) HasLine() bool { return r.hasNext }

// Line returns the next line without its terminator and advances past it.
// It returns io.EOF once the stream is exhausted, or the read error that
// stopped the stream.
func (r *Reader) Line() (string, error) {
	if !r.hasNext {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.next
	r.lineNo = r.nextNo
	r.advance()
	return line, nil
}

// LineNumber returns the 1-based number of the line last returned by Line,
// counting skipped lines, or 0 before the first call.
func (r *Reader) LineNumber() int { return r.lineNo }

// Skipped returns the numbers of the lines dropped so far for exceeding the
// maximum line length. Because of the lookahead it may include the line
// after the one last returned.
func (r *Reader) Skipped() []int { return r.skipped }

// Err returns the first error other than io.EOF encountered while reading.
// Over-long lines are not errors.
func (r *Reader) Err() error { return r.err }

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

func (r *Reader) advance() {
	r.next = ""
	r.hasNext = false
	for {
		line, tooLong, err := r.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = r.wrap(err)
			}
			return
		}
		r.physical++
		if tooLong {
			r.skipped = append(r.skipped, r.physical)
			continue
		}
		r.next = line
		r.nextNo = r.physical
		r.hasNext = true
		return
	}
}

// readLine reads one line and strips its "\n" or "\r\n" terminator. Once
// the line outgrows the limit the rest of it is discarded unbuffered and
// tooLong is set. err is io.EOF only when no bytes remain.
func (r *Reader) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	read := 0
	for {
		chunk, rerr := r.br.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			// +2 leaves room for the terminator.
			if len(buf)+len(chunk) > r.max+2 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case rerr == nil:
		case errors.Is(rerr, bufio.ErrBufferFull):
			continue
		case errors.Is(rerr, io.EOF):
			if read == 0 {
				return "", false, io.EOF
			}
		default:
			return "", false, rerr
		}
		break
	}
	if tooLong {
		return "", true, nil
	}
	if n := len(buf); n > 0 && buf[n-1] == '\n' {
		buf = buf[:n-1]
	}
	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}
	if len(buf) > r.max {
		return "", true, nil
	}
	return string(buf), false, nil
}

func (r *Reader) wrap(err error) error {
	if r.name != "" {
		return fmt.Errorf("reading %s: %w", r.name, err)
	}
	return fmt.Errorf("reading lines: %w", err)
}
