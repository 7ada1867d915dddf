package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amica/backend/internal/wire"
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conv"},
	Short:   "Manage locally stored conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		printConversations(cmd.OutOrStdout(), client)
		return nil
	},
}

var conversationsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new conversation; the next chat continues it",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		conv, err := client.Store.Create()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), conv.ID)
		return nil
	},
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the messages of a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		conv, ok := client.Store.Get(args[0])
		if !ok {
			return fmt.Errorf("conversation %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", conv.Title)
		if conv.ConversationSummary != "" {
			fmt.Fprintf(out, "\n[memoria]\n%s\n", conv.ConversationSummary)
		}
		for _, m := range conv.Messages {
			fmt.Fprintf(out, "\n[%s %s]\n%s\n", m.Role, m.Timestamp.Local().Format("2006-01-02 15:04"), m.Content)
		}
		return nil
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation (no undo)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Store.Delete(args[0]); err != nil {
			return fmt.Errorf("conversation %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsNewCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
}

// printConversations 以表格输出会话列表，当前会话以 * 标记
func printConversations(out io.Writer, client *wire.Client) {
	current := ""
	if conv := client.Store.Current(); conv != nil {
		current = conv.ID
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tTITLE\tMESSAGES\tUPDATED")
	for _, c := range client.Store.List() {
		mark := ""
		if c.ID == current {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			mark, c.ID, c.Title, len(c.Messages), c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}
