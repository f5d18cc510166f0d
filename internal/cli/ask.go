// File: internal/cli/ask.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/repository/conversation"
	"github.com/iyunix/go-vendornexus/internal/services/bot"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
)

// terminalChatID is the conversation key used by the ask command.
const terminalChatID int64 = 0

// NewAskCmd creates the 'ask' command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Talk to the assistant from the terminal",
		Long: `Run bot turns locally, printing what the bot would send to the chat.
With a message argument one turn is run; otherwise lines are read from
stdin until EOF. /start and /clear work as in Telegram.`,
		Example: `  vendornexus ask "I need stainless steel ball valves in Pune"
  vendornexus ask < questions.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				gateway, err := a.gateway()
				if err != nil {
					return err
				}
				var in io.Reader = cmd.InOrStdin()
				if len(args) > 0 {
					in = strings.NewReader(strings.Join(args, " "))
				}
				return runAsk(cmd.Context(), gateway, a.chatConfig(), a.logger, in, cmd.OutOrStdout())
			})
		},
	}
	return cmd
}

func runAsk(ctx context.Context, responder chat.Responder, cfg *chat.Config, logger bot.Logger, in io.Reader, out io.Writer) error {
	transport := &writerTransport{out: out}
	b, err := bot.NewBot(transport, responder, conversation.NewMemoryStore(), cfg, logger)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := b.HandleText(ctx, terminalChatID, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// writerTransport prints bot messages instead of sending them.
type writerTransport struct {
	mu  sync.Mutex
	out io.Writer
}

func (t *writerTransport) SendText(ctx context.Context, chatID int64, text string, markdown bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.out, "%s\n\n", text)
	return err
}

func (t *writerTransport) SendTyping(ctx context.Context, chatID int64) error {
	return nil
}
