// amica 是 AMICA 的终端客户端：本地保存会话，通过 /api/chat 与 /api/tts 对话和朗读
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amica/backend/internal/infrastructure/config"
	applog "github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/wire"
)

var (
	apiURL  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "amica",
	Short: "AMICA - la tua assistente personale, dal terminale",
	Long: `amica is the terminal client for the AMICA assistant.

Conversations are stored locally (~/.amica/amica.db) and every turn is sent
to the AMICA server together with the full history and the running summary.

Environment Variables:
  AMICA_API_URL       - AMICA server URL (default http://localhost:3001)
  AMICA_DATA_DIR      - local data directory (default ~/.amica)
  AMICA_AUDIO_PLAYER  - command used to play replies, e.g. "mpv --no-video"`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "AMICA server URL (overrides AMICA_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging on stderr")

	rootCmd.Flags().BoolVar(&speakReplies, "speak", false, "read replies aloud (requires AMICA_AUDIO_PLAYER)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 初始化日志并组装客户端依赖
func setup() (*wire.Client, func(), error) {
	applog.Init(applog.NewCLIConfig(verbose))

	if apiURL != "" {
		// 命令行参数优先于环境变量与 .env
		if err := os.Setenv(config.EnvAPIURL, apiURL); err != nil {
			return nil, nil, err
		}
	}

	client, cleanup, err := wire.InitializeClient()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize client: %w", err)
	}
	return client, cleanup, nil
}
