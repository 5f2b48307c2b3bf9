// Package repl runs a tock session as a plain line console: one command per
// input line, one reply per command.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Iron-Ham/tock/internal/assistant"
	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/tui/styles"
	"github.com/Iron-Ham/tock/internal/util"
)

const divider = "____________________________________________________________"

// Console reads command lines from an input and writes replies to an output.
type Console struct {
	assistant *assistant.Assistant
	in        io.Reader
	out       io.Writer
	styled    bool
	prompt    bool
}

// Option configures a Console.
type Option func(*Console)

// WithStyle forces styled output on or off. By default output is styled
// only when it is a terminal.
func WithStyle(styled bool) Option {
	return func(c *Console) {
		c.styled = styled
	}
}

// New returns a Console for a.
func New(a *assistant.Assistant, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		assistant: a,
		in:        in,
		out:       out,
		styled:    isTerminal(out),
	}
	c.prompt = isTerminal(in) && c.styled
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run greets the user and handles lines until bye, end of input or ctx is
// cancelled. A reply whose save failed ends the session with that error.
func (c *Console) Run(ctx context.Context) error {
	c.print(assistant.Greeting(), nil)

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.prompt {
			fmt.Fprint(c.out, styles.Prompt.Render("> "))
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read input")
			}
			return nil
		}

		reply := c.assistant.Handle(scanner.Text())
		c.print(reply.Message, reply.Err)

		if reply.Fatal() {
			return reply.Err
		}
		if reply.Exit {
			return nil
		}
	}
}

func (c *Console) print(message string, err error) {
	if !c.styled {
		fmt.Fprintf(c.out, "%s\n%s\n%s\n", divider, util.Indent(message, " "), divider)
		return
	}
	if err == nil {
		message = styles.HighlightTasks(message)
	}
	fmt.Fprintln(c.out, styles.ReplyStyle(err).Render(message))
}
