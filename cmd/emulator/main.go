package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ruralpay/assistant/internal/app"
	"github.com/ruralpay/assistant/internal/channel"
	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/telemetry"
)

var (
	conversationID string
	userID         string
	showTraces     bool
	storageDriver  string
	logLevel       string
)

// rootCmd chats with the assistant in-process on stdin/stdout
var rootCmd = &cobra.Command{
	Use:   "emulator",
	Short: "Chat with the banking assistant from the terminal",
	Long: `Runs the assistant in-process and relays stdin lines as messages.

Configuration is read from .env and the environment like the server.
Numbered suggestions can be picked by typing their number. Type /exit to quit.`,
	SilenceUsage: true,
	RunE:         runEmulator,
}

func init() {
	rootCmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "conversation id (default: random)")
	rootCmd.Flags().StringVarP(&userID, "user", "u", "console-user", "user id sent with every message")
	rootCmd.Flags().BoolVar(&showTraces, "traces", false, "print trace activities")
	rootCmd.Flags().StringVar(&storageDriver, "storage", "", "override STORAGE_DRIVER (memory, redis, postgres, bolt)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")
}

func runEmulator(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if storageDriver != "" {
		cfg.Storage.Driver = storageDriver
	}
	if conversationID == "" {
		conversationID = "console:" + uuid.NewString()
	}

	logger, err := telemetry.NewLogger(logLevel, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assistant, err := app.New(ctx, cfg, config.LoadDialogConfig(), logger)
	if err != nil {
		return err
	}
	defer assistant.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Conversation %s (type %s to quit)\n", conversationID, channel.ExitCommand)
	console := channel.NewConsole(assistant.Bot, cmd.InOrStdin(), cmd.OutOrStdout(), conversationID, userID, showTraces)
	return console.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
