package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agrofisco/invoice-agent/internal/classifier"
	"github.com/agrofisco/invoice-agent/internal/config"
	"github.com/agrofisco/invoice-agent/internal/extractor"
	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/llm"
	"github.com/agrofisco/invoice-agent/internal/logger"
	"github.com/agrofisco/invoice-agent/internal/pipeline"
	"github.com/agrofisco/invoice-agent/internal/registry"
	"github.com/agrofisco/invoice-agent/internal/store"
	"github.com/agrofisco/invoice-agent/internal/texttosql"
)

// app holds the clients the subcommands share. It is built once, after
// flag parsing, so --help never requires credentials.
type app struct {
	cfg       *config.Config
	store     *store.Client
	gen       *llm.Gemini
	pipeline  *pipeline.Pipeline
	persister *registry.Persister
}

var rulesFile string

func newApp(ctx context.Context) (*app, error) {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found; relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := store.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return nil, err
	}

	gen, err := llm.NewGemini(ctx, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	rules := classifier.Default()
	if rulesFile != "" {
		rules, err = classifier.Load(rulesFile)
		if err != nil {
			return nil, err
		}
	}

	verifier := registry.NewVerifier(st, log)
	return &app{
		cfg:       cfg,
		store:     st,
		gen:       gen,
		pipeline:  pipeline.New(extractor.PDFText{}, extractor.NewAgent(gen), rules, verifier, log),
		persister: registry.NewPersister(st, log),
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <invoice.pdf>",
		Short: "Extract structured fields from an invoice PDF",
		Long: `Extract runs an invoice PDF through text extraction, model field
extraction, installment defaulting, expense classification and registry
verification, and prints the resulting record as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			result, err := a.pipeline.Process(ctx, f)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <record.json>",
		Short: "Persist a confirmed invoice record to the store",
		Long: `Save reads a record as printed by extract (after any manual edits)
and hands it to the store's persistence procedure in a single call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var rec invoice.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			confirmation, err := a.persister.Save(ctx, &rec)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"saved":        true,
				"confirmation": confirmation,
			})
		},
	}
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a natural-language question over the stored records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			orchestrator := texttosql.NewOrchestrator(a.gen, a.store, logger.New())
			fmt.Println(orchestrator.Answer(ctx, args[0]))
			return nil
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "invoice-agent",
		Short: "Invoice extraction and expense tracking agent",
		Long: `invoice-agent extracts structured data from invoice PDFs, classifies
expenses, verifies parties against the registry, persists confirmed
records and answers questions about what was stored.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML file overriding the built-in classification rules")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newAskCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
