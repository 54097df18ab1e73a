package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-watchlist/internal/chat"
	"movie-watchlist/internal/deepseek"
)

// stubCompleter scripts replies and records what it was asked.
type stubCompleter struct {
	replies  []string
	err      error
	requests [][]deepseek.Message
}

func (s *stubCompleter) next() string {
	if len(s.replies) == 0 {
		return "ok"
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply
}

func (s *stubCompleter) Complete(_ context.Context, messages []deepseek.Message) (string, error) {
	s.requests = append(s.requests, append([]deepseek.Message(nil), messages...))
	if s.err != nil {
		return "", s.err
	}
	return s.next(), nil
}

func (s *stubCompleter) StreamComplete(_ context.Context, messages []deepseek.Message, onDelta func(string) error) (string, error) {
	s.requests = append(s.requests, append([]deepseek.Message(nil), messages...))
	if s.err != nil {
		return "", s.err
	}
	reply := s.next()
	for _, r := range reply {
		if err := onDelta(string(r)); err != nil {
			return "", err
		}
	}
	return reply, nil
}

func TestApp_ConversationKeepsHistory(t *testing.T) {
	stub := &stubCompleter{replies: []string{"four", "eight"}}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("2+2?\n4+4?\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	// The second request carries the full history: user, assistant, user.
	require.Len(t, stub.requests, 2)
	assert.Len(t, stub.requests[0], 1)
	require.Len(t, stub.requests[1], 3)
	assert.Equal(t, "assistant", stub.requests[1][1].Role)
	assert.Equal(t, "four", stub.requests[1][1].Content)

	assert.Contains(t, out.String(), "DeepSeek: four")
	assert.Contains(t, out.String(), "DeepSeek: eight")
}

func TestApp_ClearDropsHistory(t *testing.T) {
	stub := &stubCompleter{replies: []string{"one", "two"}}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("first\nclear\nsecond\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	require.Len(t, stub.requests, 2)
	// After clear, the second request starts a fresh conversation.
	assert.Len(t, stub.requests[1], 1)
	assert.Equal(t, "second", stub.requests[1][0].Content)
	assert.Contains(t, out.String(), "History cleared")
}

func TestApp_StreamToggle(t *testing.T) {
	stub := &stubCompleter{replies: []string{"hi"}}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("stream\nhello\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Streaming mode on")
	assert.Contains(t, out.String(), "DeepSeek: hi")
	require.Len(t, app.History(), 2)
	assert.Equal(t, "hi", app.History()[1].Content)
}

func TestApp_ErrorKeepsLoopAlive(t *testing.T) {
	stub := &stubCompleter{err: assert.AnError}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("hello\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Error:")
	// The failed turn produced no assistant message.
	require.Len(t, app.History(), 1)
	assert.Equal(t, "user", app.History()[0].Role)
}

func TestApp_HistoryTruncatesOnRuneBoundary(t *testing.T) {
	reply := strings.Repeat("球", 120)
	stub := &stubCompleter{replies: []string{reply}}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("讲个故事\nhistory\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	// The listing keeps the first 100 characters whole; no split rune.
	assert.Contains(t, out.String(), strings.Repeat("球", 100)+"...")
	assert.NotContains(t, out.String(), strings.Repeat("球", 101))
}

func TestApp_HistoryCommand(t *testing.T) {
	stub := &stubCompleter{replies: []string{"fine"}}
	var out strings.Builder
	app := chat.NewApp(stub, strings.NewReader("how are you\nhistory\nexit\n"), &out)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Conversation history:")
	assert.Contains(t, out.String(), "1. You: how are you")
	assert.Contains(t, out.String(), "2. AI: fine")
}
