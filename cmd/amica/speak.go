package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Read a text aloud with the AMICA voice",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if client.Player == nil {
			return fmt.Errorf("AMICA_AUDIO_PLAYER is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		audio, format, err := client.API.Speak(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		done := make(chan struct{})
		client.Player.OnFinished(func() { close(done) })
		if err := client.Player.Play(ctx, audio, format); err != nil {
			return err
		}
		<-done
		return nil
	},
}
