package console

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectLines(c *Console) []string {
	var out []string
	for line := range c.Lines() {
		out = append(out, line)
	}
	return out
}

func TestRawConsoleSubmitsEditedLine(t *testing.T) {
	var out bytes.Buffer
	c := open(strings.NewReader("clea\x7far\rexit\r"), &out, true, nil)

	assert.Equal(t, []string{"clear", "exit"}, collectLines(c))

	// echo: appended runes, destructive backspace, newline + fresh prompt
	assert.Contains(t, out.String(), "clea\b \bar")
	assert.Contains(t, out.String(), "\r\n"+c.prompt)
}

func TestRawConsoleCtrlCSubmitsExit(t *testing.T) {
	var out bytes.Buffer
	c := open(strings.NewReader("cle\x03"), &out, true, nil)

	assert.Equal(t, []string{"exit"}, collectLines(c))
	assert.Empty(t, c.editor.Pending(), "pending input is dropped on ctrl-c")
}

func TestRawConsoleWriteRedrawsPendingInput(t *testing.T) {
	var out bytes.Buffer
	c := open(strings.NewReader("cle"), &out, true, nil)

	// wait for the reader to finish so the pending buffer is stable
	assert.Empty(t, collectLines(c))
	require.Equal(t, "cle", c.editor.Pending())

	out.Reset()
	n, err := c.Write([]byte("board cleared\n"))
	require.NoError(t, err)
	assert.Equal(t, len("board cleared\n"), n)

	// wipe the line, print the status, redraw prompt and partial input
	assert.Equal(t, clearLine+"board cleared\r\n"+c.prompt+"cle", out.String())
}

func TestRawConsoleWriteConvertsInteriorNewlines(t *testing.T) {
	var out bytes.Buffer
	c := open(strings.NewReader(""), &out, true, nil)

	assert.Empty(t, collectLines(c))

	out.Reset()
	_, err := c.Write([]byte("joined channel\nwatching for answers\n"))
	require.NoError(t, err)

	// every line break carries a carriage return so raw mode does not
	// stair-step the second line
	assert.Equal(t, clearLine+"joined channel\r\nwatching for answers\r\n"+c.prompt, out.String())
}

// dripReader hands out one byte per read so keystrokes arrive one at a
// time with room for other goroutines to interleave.
type dripReader struct {
	data []byte
	pos  int
}

func (r *dripReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	time.Sleep(50 * time.Microsecond)
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

// inputLineSnapshots replays the console's escape sequences and returns
// the state of the prompt line each time it was wiped, replaced, or left
// standing at the end.
func inputLineSnapshots(stream, prompt string) []string {
	var snaps []string
	line := ""
	snap := func() {
		if rest, ok := strings.CutPrefix(line, prompt); ok {
			snaps = append(snaps, rest)
		}
		line = ""
	}
	for i := 0; i < len(stream); {
		switch {
		case strings.HasPrefix(stream[i:], clearLine):
			snap()
			i += len(clearLine)
		case strings.HasPrefix(stream[i:], "\r\n"):
			snap()
			i += 2
		case strings.HasPrefix(stream[i:], "\b \b"):
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
			i += 3
		default:
			line += string(stream[i])
			i++
		}
	}
	snap()
	return snaps
}

func TestRawConsoleWriteDuringTypingKeepsDisplayConsistent(t *testing.T) {
	// strictly alternating keystrokes: any adjacent duplicate on screen
	// means a redraw and a keystroke echo raced each other
	keys := strings.Repeat("ab", 25)

	var out bytes.Buffer
	c := open(&dripReader{data: []byte(keys)}, &out, true, nil)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_, _ = c.Write([]byte("board updated\n"))
			}
		}
	}()

	assert.Empty(t, collectLines(c))
	close(stop)
	wg.Wait()

	require.Equal(t, keys, c.editor.Pending())
	for _, line := range inputLineSnapshots(out.String(), c.prompt) {
		for i := 1; i < len(line); i++ {
			require.NotEqual(t, line[i-1], line[i],
				"echoed input duplicated a rune around a concurrent redraw: %q", line)
		}
	}
}

func TestPlainConsoleReadsLinesAndPassesWritesThrough(t *testing.T) {
	var out bytes.Buffer
	c := open(strings.NewReader("clear\nexit\n"), &out, false, nil)

	assert.Equal(t, []string{"clear", "exit"}, collectLines(c))

	n, err := c.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "hello\n", out.String())
}

func TestCloseRestoresTerminalOnce(t *testing.T) {
	restored := 0
	c := open(strings.NewReader(""), &bytes.Buffer{}, true, func() error {
		restored++
		return nil
	})

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, restored)
}
