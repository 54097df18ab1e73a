// Package chat implements the interactive REPL around the DeepSeek
// client: conversation history, streaming toggle and the small command
// set.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"movie-watchlist/internal/deepseek"
)

// Completer is the slice of the DeepSeek client the REPL needs; tests
// substitute a stub.
type Completer interface {
	Complete(ctx context.Context, messages []deepseek.Message) (string, error)
	StreamComplete(ctx context.Context, messages []deepseek.Message, onDelta func(string) error) (string, error)
}

// App is the chat REPL state.
type App struct {
	client    Completer
	history   []deepseek.Message
	streaming bool

	in  *bufio.Reader
	out io.Writer
}

// NewApp creates a REPL reading from in and writing to out.
func NewApp(client Completer, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run drives the prompt loop until "exit" or EOF. API failures are
// printed and the loop continues.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "DeepSeek interactive chat")
	fmt.Fprintln(a.out, "Commands: exit, clear, history, stream")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))

	for {
		fmt.Fprint(a.out, "\nYou: ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "\nBye!")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		case "clear":
			a.ClearHistory()
			continue
		case "history":
			a.ShowHistory()
			continue
		case "stream":
			a.streaming = !a.streaming
			if a.streaming {
				fmt.Fprintln(a.out, "Streaming mode on")
			} else {
				fmt.Fprintln(a.out, "Streaming mode off")
			}
			continue
		}

		a.Ask(ctx, input)
	}
}

// Ask sends one user turn, in the current mode, and records both sides of
// the exchange in the history.
func (a *App) Ask(ctx context.Context, input string) {
	a.history = append(a.history, deepseek.Message{Role: "user", Content: input})

	var reply string
	var err error
	if a.streaming {
		fmt.Fprint(a.out, "\nDeepSeek: ")
		reply, err = a.client.StreamComplete(ctx, a.history, func(delta string) error {
			_, werr := fmt.Fprint(a.out, delta)
			return werr
		})
		fmt.Fprintln(a.out)
	} else {
		reply, err = a.client.Complete(ctx, a.history)
		if err == nil {
			fmt.Fprintf(a.out, "\nDeepSeek: %s\n", reply)
		}
	}

	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}
	a.history = append(a.history, deepseek.Message{Role: "assistant", Content: reply})
}

// ClearHistory drops the conversation so the next turn starts fresh.
func (a *App) ClearHistory() {
	a.history = nil
	fmt.Fprintln(a.out, "History cleared")
}

// ShowHistory prints the conversation so far, truncating long turns.
func (a *App) ShowHistory() {
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
	fmt.Fprintln(a.out, "Conversation history:")
	for i, msg := range a.history {
		role := "You"
		if msg.Role == "assistant" {
			role = "AI"
		}
		// Truncate on a rune boundary so multibyte turns never print a
		// split character.
		content := msg.Content
		if runes := []rune(content); len(runes) > 100 {
			content = string(runes[:100]) + "..."
		}
		fmt.Fprintf(a.out, "%d. %s: %s\n", i+1, role, content)
	}
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
}

// History exposes the recorded conversation, mainly for tests.
func (a *App) History() []deepseek.Message {
	return a.history
}
