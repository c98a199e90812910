// Package chats wires the study-assistant chat into the command line.
package chats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/julianstephens/learnnova/internal/chat"
	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/models"
)

type ChatCmd struct {
	Serve ServeCmd `cmd:"" help:"Run the local chat proxy."`
	Ask   AskCmd   `cmd:"" help:"Ask the study assistant a question."`
}

// newService builds a service from the configured provider. Missing
// credentials are not an error: the service answers with the fallback.
func newService(ctx context.Context, c *cli.Context) (*chat.Service, error) {
	provider, err := chat.NewProvider(ctx, c.Config.Chat, c.Config.APIKey())
	if errors.Is(err, chat.ErrNoAPIKey) {
		logger.Warn("No chat API key configured", "provider", c.Config.Chat.Provider)
	} else if err != nil {
		return nil, err
	}
	return chat.NewService(provider, c.Config.Chat.Timeout), nil
}

type ServeCmd struct {
	Addr string `help:"Address to listen on. Defaults to chat.listen_addr."`
}

func (cmd *ServeCmd) Run(c *cli.Context) error {
	addr := cmd.Addr
	if addr == "" {
		addr = c.Config.Chat.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx, c)
	if err != nil {
		return err
	}
	if !svc.Available() {
		c.Println("⚠️  No API key configured, replies will be the fallback message.")
	}
	c.Printf("Chat server listening on %s (Ctrl+C to stop)\n", addr)
	return chat.Serve(ctx, addr, svc)
}

type AskCmd struct {
	Message []string `arg:"" help:"Question to ask."`
	Local   bool     `help:"Skip any running chat server and call the provider directly."`
}

func (cmd *AskCmd) Run(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(cmd.Message, " "))
	if question == "" {
		return errors.New("message cannot be empty")
	}
	messages := []models.ChatMessage{{Role: models.RoleUser, Content: question}}
	ctx := context.Background()

	if !cmd.Local {
		if baseURL, err := chat.Discover(); err == nil {
			reply, err := chat.NewClient(baseURL).Ask(ctx, messages)
			if err == nil {
				c.Println(reply)
				return nil
			}
			logger.Warn("Chat server request failed, answering directly", "url", baseURL, "error", err)
		} else {
			logger.Debug("No chat server found", "reason", err)
		}
	}

	svc, err := newService(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to set up chat provider: %w", err)
	}
	c.Println(svc.Reply(ctx, messages).Content)
	return nil
}
