package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	domainConversation "github.com/amica/backend/internal/domain/conversation"
	"github.com/amica/backend/internal/wire"
)

var (
	speakReplies   bool
	conversationID string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send one message, or start an interactive chat when no message is given",
	Args:  cobra.ArbitraryArgs,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&speakReplies, "speak", false, "read replies aloud (requires AMICA_AUDIO_PLAYER)")
	chatCmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "continue the conversation with this id")
}

func runChat(cmd *cobra.Command, args []string) error {
	client, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if conversationID != "" {
		if err := client.Store.Select(conversationID); err != nil {
			return fmt.Errorf("conversation %s: %w", conversationID, err)
		}
	}

	r := &repl{client: client, out: &lockedWriter{w: cmd.OutOrStdout()}, speak: speakReplies}
	if r.speak && client.Player == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "AMICA_AUDIO_PLAYER is not set, replies will not be read aloud")
		r.speak = false
	}
	if client.Player != nil {
		defer client.Player.Stop()
	}

	if len(args) > 0 {
		// 单次发送：等待朗读结束后再退出
		r.wait = true
		return r.send(ctx, strings.Join(args, " "))
	}
	return r.loop(ctx, cmd.InOrStdin())
}

const (
	readyPrompt = "> "
	// mutedPrompt 朗读期间的提示
	mutedPrompt = "♪ "
)

// lockedWriter 朗读回调与主循环共用输出
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

// repl 交互式对话
type repl struct {
	client *wire.Client
	out    io.Writer
	speak  bool
	wait   bool

	mu          sync.Mutex
	promptShown bool
	muted       bool
}

func (r *repl) loop(ctx context.Context, in io.Reader) error {
	if created, err := r.client.Session.Welcome(); err != nil {
		return err
	} else if created {
		r.printLast()
	} else if conv := r.client.Store.Current(); conv != nil {
		fmt.Fprintf(r.out, "Conversazione: %s (%d messaggi)\n", conv.Title, len(conv.Messages))
	}
	fmt.Fprintln(r.out, "Scrivi un messaggio, /help per i comandi.")
	if r.client.Player != nil {
		r.client.Player.OnFinished(r.rearm)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		r.prompt()
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		r.inputReceived()
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := r.command(line)
			if err != nil {
				fmt.Fprintln(r.out, "Errore:", err)
			}
			if quit {
				return nil
			}
			continue
		}

		if err := r.send(ctx, line); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// prompt 输出输入提示，朗读期间显示 mutedPrompt
func (r *repl) prompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.promptShown {
		return
	}
	r.promptShown = true
	if r.client.Player != nil && r.client.Player.Playing() {
		r.muted = true
		fmt.Fprint(r.out, mutedPrompt)
		return
	}
	r.muted = false
	fmt.Fprint(r.out, readyPrompt)
}

// rearm 朗读结束或被停止后恢复输入提示
func (r *repl) rearm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.muted {
		return
	}
	r.muted = false
	r.promptShown = true
	fmt.Fprint(r.out, "\n"+readyPrompt)
}

func (r *repl) inputReceived() {
	r.mu.Lock()
	r.promptShown = false
	r.mu.Unlock()
}

func (r *repl) send(ctx context.Context, text string) error {
	reply, err := r.client.Session.Send(ctx, text)
	if err != nil {
		if errors.Is(err, domainConversation.ErrEmptyMessage) {
			return nil
		}
		return err
	}

	prefix := "AMICA"
	if reply.WebAccess {
		prefix = "AMICA 🌐"
	}
	fmt.Fprintf(r.out, "%s: %s\n", prefix, reply.Message.Content)
	if reply.Failed && verbose {
		fmt.Fprintln(os.Stderr, "request error:", reply.Err)
	}

	if r.speak && !reply.Failed {
		r.readAloud(ctx, reply.Message.Content)
	}
	return nil
}

// readAloud 朗读回复；新的朗读会先停止上一段
func (r *repl) readAloud(ctx context.Context, text string) {
	audio, format, err := r.client.API.Speak(ctx, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tts error:", err)
		return
	}
	if err := r.client.Player.Play(ctx, audio, format); err != nil {
		fmt.Fprintln(os.Stderr, "playback error:", err)
		return
	}
	if r.wait {
		r.client.Player.Wait()
	}
}

func (r *repl) printLast() {
	conv := r.client.Store.Current()
	if conv == nil || len(conv.Messages) == 0 {
		return
	}
	fmt.Fprintf(r.out, "AMICA: %s\n", conv.Messages[len(conv.Messages)-1].Content)
}

// command 处理 / 开头的指令，返回是否退出
func (r *repl) command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, "/new  /list  /select <id>  /delete <id>  /stop  /speak on|off  /quit")
	case "/new":
		conv, err := r.client.Store.Create()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "Nuova conversazione %s\n", conv.ID)
	case "/list":
		printConversations(r.out, r.client)
	case "/select":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /select <id>")
		}
		if err := r.client.Store.Select(fields[1]); err != nil {
			return false, err
		}
		conv := r.client.Store.Current()
		fmt.Fprintf(r.out, "Conversazione: %s\n", conv.Title)
	case "/delete":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /delete <id>")
		}
		return false, r.client.Store.Delete(fields[1])
	case "/stop":
		if r.client.Player != nil {
			r.client.Player.Stop()
		}
	case "/speak":
		if r.client.Player == nil {
			return false, fmt.Errorf("AMICA_AUDIO_PLAYER is not set")
		}
		r.speak = len(fields) < 2 || fields[1] != "off"
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}
