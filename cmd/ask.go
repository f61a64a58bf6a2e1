package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wordsalad/internal/pkg/client"
)

var askCmd = &cobra.Command{
	Use:   "ask <command>",
	Short: "Send a command to a running WordSalad server",
	Example: `  wordsalad ask moon30 --server http://localhost:5000
  wordsalad ask --health`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	flags := askCmd.Flags()
	flags.String("server", "http://localhost:5000", "WordSalad server base URL")
	flags.Duration("timeout", 60*time.Second, "request timeout")
	flags.Bool("health", false, "only check server health")
}

func runAsk(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	healthOnly, _ := cmd.Flags().GetBool("health")

	c := client.NewClient(serverURL, timeout)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		out any
		err error
	)
	switch {
	case healthOnly:
		out, err = c.Health(ctx)
	case len(args) == 0:
		out, err = c.Info(ctx)
	default:
		out, err = c.Generate(ctx, args[0])
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
