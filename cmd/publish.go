package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tweetgram/application"

	"github.com/spf13/cobra"
)

var (
	publishChatID  int64
	publishTimeout time.Duration
)

var publishCmd = &cobra.Command{
	Use:   "publish <tweet_url>",
	Short: "Publish a single tweet to a Telegram chat",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires <tweet_url>")
		}
		if publishChatID == 0 {
			return errors.New("requires --chat")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := application.New()
		if err != nil {
			return err
		}
		defer app.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := app.Publish(ctx, publishChatID, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %s to chat %d\n", args[0], publishChatID)
		return nil
	},
}

func init() {
	publishCmd.Flags().Int64Var(&publishChatID, "chat", 0, "Telegram chat id")
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 5*time.Minute, "publish timeout")
	rootCmd.AddCommand(publishCmd)
}
