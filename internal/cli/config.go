package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/symgo/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Prints the configuration after environment overrides, with API keys masked.",
		Run:   runConfig,
	}

	RootCmd.AddCommand(cmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(func(o *config.Options) {
		o.Path = configPath
		o.Logger = newLogger()
	})
	if err != nil {
		exitErr("load config", err)
	}

	cfg.ReasoningEngineAPIKey = mask(cfg.ReasoningEngineAPIKey)
	cfg.EmbeddingEngineAPIKey = mask(cfg.EmbeddingEngineAPIKey)

	b, _ := json.MarshalIndent(cfg, "", "  ")
	fmt.Println(string(b))
}

func mask(key string) string {
	if len(key) <= 8 {
		if key == "" {
			return ""
		}
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
