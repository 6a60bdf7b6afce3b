package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"richtext/internal/config"
	"richtext/internal/logging"
	"richtext/internal/normalize"
	"richtext/pkg/richtext"
	"richtext/pkg/termrender"
)

var (
	configPath   string
	format       string
	noNormalize  bool
	interactions bool
	verbosity    int
)

var rootCmd = &cobra.Command{
	Use:   "richtext [file]",
	Short: "Convert restricted HTML markup into attributed text",
	Long: `richtext parses a restricted HTML fragment and emits attributed text:
the plain text plus the style and interaction ranges a host renderer
would apply. Reads from the given file, or stdin when no file is given.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML options file")
	rootCmd.Flags().StringVarP(&format, "format", "f", "ansi", "output format: ansi, text, json")
	rootCmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "skip the markup normalization pass")
	rootCmd.Flags().BoolVar(&interactions, "interactions", false, "list interaction ranges after the output")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
}

func run(cmd *cobra.Command, args []string) error {
	logging.SetupLogger(verbosity)
	log := logging.GetLogger("cli")

	opts := config.Default()
	if configPath != "" {
		var err error
		opts, err = config.LoadFile(configPath)
		if err != nil {
			return err
		}
	}

	content, err := readInput(args)
	if err != nil {
		return err
	}

	engine := richtext.New(opts)
	if !noNormalize {
		engine.SetNormalizer(normalize.New())
	}

	result, err := engine.Render(content)
	if err != nil {
		// Degraded, not fatal: the result is still displayable.
		log.Warn().Err(err).Msg("render degraded to plain text")
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	case "text":
		fmt.Println(result.Text)
	case "ansi":
		fmt.Println(termrender.New().Render(result))
	default:
		return fmt.Errorf("unknown format %q (want ansi, text or json)", format)
	}

	if interactions && format != "json" {
		for _, ir := range result.Interactions {
			fmt.Printf("%s [%d:%d] -> %s\n", ir.Kind, ir.Start, ir.End(), ir.Target)
		}
	}
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
