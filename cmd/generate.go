package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordsalad/internal/model"
	"wordsalad/internal/server"
)

var generateCmd = &cobra.Command{
	Use:   "generate <command>",
	Short: "Generate a paragraph locally",
	Long: `Parse a command such as "moon30" and generate the paragraph in-process,
without starting the HTTP server. Use --ai-provider demo to run without an API key.`,
	Example: `  wordsalad generate moon30
  wordsalad generate "artificial intelligence100" --ai-provider demo`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.String("ai-provider", "openai", "AI provider (openai/azure/ark/demo)")
	flags.Bool("no-wikipedia", false, "skip the Wikipedia context lookup")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	// ai.provider 已由 serve 绑定，这里只在显式指定时覆盖
	if cmd.Flags().Changed("ai-provider") {
		cfg.AI.Provider, _ = cmd.Flags().GetString("ai-provider")
	}
	if noWiki, _ := cmd.Flags().GetBool("no-wikipedia"); noWiki {
		cfg.Wikipedia.Enabled = false
	}

	if err := cfg.Generation.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx := context.Background()
	svc, err := server.NewParagraphService(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := svc.Generate(ctx, args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(model.GenerateResponse{
		Success:     true,
		Input:       args[0],
		Topic:       result.Topic,
		WordCount:   result.WordCount,
		Paragraph:   result.Paragraph,
		UsedContext: result.UsedContext,
	})
}
