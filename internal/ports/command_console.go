package ports

import "io"

// CommandConsole delivers operator-submitted command lines and accepts
// interleaved status output. Writes must not corrupt a partially typed,
// unsubmitted input line; implementations redraw the pending input after
// each write, which is why loggers point their output here.
type CommandConsole interface {
	io.Writer

	// Lines yields each submitted command line. The channel closes when
	// the input device is exhausted.
	Lines() <-chan string
	Close() error
}
