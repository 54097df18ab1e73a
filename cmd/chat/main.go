// Command chat is an interactive REPL against the DeepSeek
// chat-completions API. The API key comes from DEEPSEEK_API_KEY.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"movie-watchlist/internal/chat"
	"movie-watchlist/internal/deepseek"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "DEEPSEEK_API_KEY must be set")
		os.Exit(1)
	}

	client := deepseek.NewClient(apiKey, os.Getenv("DEEPSEEK_BASE_URL"))
	app := chat.NewApp(client, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
