package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/mfern/chattally/internal/ports"
)

const (
	asciiETX = 0x03 // ctrl-c, delivered as a byte in raw mode
	asciiBS  = 0x08
	asciiDEL = 0x7f

	clearLine = "\r\x1b[K"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))

// Console is the interactive command surface. A reader goroutine feeds
// raw keystrokes through the line editor and delivers submitted lines on
// a channel; status output from other components is serialized around
// the pending input line: wipe it, print the status, redraw the input.
//
// When stdin is not a terminal (pipes, tests) the console degrades to
// plain line-oriented reads and pass-through writes.
type Console struct {
	in      io.Reader
	out     io.Writer
	outMu   sync.Mutex
	editor  *LineEditor
	lines   chan string
	done    chan struct{}
	once    sync.Once
	restore func() error
	raw     bool
	prompt  string
}

var _ ports.CommandConsole = (*Console)(nil)

// Open puts the terminal into raw mode (when stdin is one) and starts
// the keystroke reader.
func Open(in *os.File, out io.Writer) (*Console, error) {
	raw := term.IsTerminal(in.Fd())

	var restore func() error
	if raw {
		state, err := term.MakeRaw(in.Fd())
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}
		restore = func() error { return term.Restore(in.Fd(), state) }
	}

	return open(in, out, raw, restore), nil
}

func open(in io.Reader, out io.Writer, raw bool, restore func() error) *Console {
	c := &Console{
		in:      in,
		out:     out,
		editor:  &LineEditor{},
		lines:   make(chan string),
		done:    make(chan struct{}),
		restore: restore,
		raw:     raw,
		prompt:  promptStyle.Render("> "),
	}

	if c.raw {
		c.outMu.Lock()
		_, _ = io.WriteString(c.out, c.prompt)
		c.outMu.Unlock()
	}

	go c.readLoop()
	return c
}

// Lines yields submitted command lines. Closed when input is exhausted.
func (c *Console) Lines() <-chan string { return c.lines }

// Write renders one status line above the pending operator input: the
// in-progress line is wiped, the status text printed, and the input
// redrawn from the editor buffer. Implements io.Writer so the logger
// points its console output here.
func (c *Console) Write(p []byte) (int, error) {
	c.outMu.Lock()
	defer c.outMu.Unlock()

	text := strings.TrimRight(string(p), "\r\n")
	if !c.raw {
		if _, err := fmt.Fprintln(c.out, text); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	// raw mode disables output post-processing, so every interior line
	// break needs its own carriage return or multi-line text stair-steps
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")

	if _, err := io.WriteString(c.out, clearLine+text+"\r\n"+c.prompt+c.editor.Pending()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close stops line delivery and restores the terminal state.
func (c *Console) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		if c.restore != nil {
			c.outMu.Lock()
			_, _ = io.WriteString(c.out, clearLine)
			c.outMu.Unlock()
			err = c.restore()
		}
	})
	return err
}

func (c *Console) readLoop() {
	defer close(c.lines)

	if !c.raw {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			if !c.deliver(scanner.Text()) {
				return
			}
		}
		return
	}

	reader := bufio.NewReader(c.in)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}

		if r == asciiETX {
			// raw mode swallows the SIGINT a ctrl-c would normally
			// raise; treat it as an exit request instead
			_, _ = c.handleKey('\r')
			if !c.deliver("exit") {
				return
			}
			continue
		}

		line, action := c.handleKey(r)
		if action == KeySubmit {
			if !c.deliver(line) {
				return
			}
		}
	}
}

func (c *Console) deliver(line string) bool {
	select {
	case c.lines <- line:
		return true
	case <-c.done:
		return false
	}
}

// handleKey feeds one keystroke through the editor and echoes its effect
// while still holding the output lock. Mutating the buffer and echoing
// must be one critical section: a concurrent Write landing between them
// would redraw the already-updated buffer and the echo would then repeat
// its last rune on screen.
func (c *Console) handleKey(r rune) (string, KeyAction) {
	c.outMu.Lock()
	defer c.outMu.Unlock()

	line, action := c.editor.Key(r)
	switch action {
	case KeyAppend:
		fmt.Fprintf(c.out, "%c", r)
	case KeyErase:
		_, _ = io.WriteString(c.out, "\b \b")
	case KeySubmit:
		_, _ = io.WriteString(c.out, "\r\n"+c.prompt)
	case KeyNoop:
	}
	return line, action
}
