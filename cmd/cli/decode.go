package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kosarica/catalog-service/internal/decode"
	"github.com/kosarica/catalog-service/internal/export"
	"github.com/kosarica/catalog-service/internal/parsers/charset"
	"github.com/kosarica/catalog-service/internal/types"
)

var (
	decodeKind     string
	decodeOutput   string
	decodeOut      string
	decodeEncoding string
	decodeWorkers  int
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a local file of raw offers or publications",
	Long: `Decode a local JSON file holding an array of raw records (or an object
wrapping one under "offers" or "publications"). The output lists the decoded
records followed by any skipped records and warnings.

Supported encodings: auto (default), utf-8, windows-1250, iso-8859-2`,
	Example: `  catalog-service decode ./data/publications.json --kind publication
  catalog-service decode ./data/offers.json --kind offer --output json
  catalog-service decode ./data/offers.json --kind offer --output xlsx --out offers.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeKind, "kind", "", "Record kind: publication or offer (required)")
	decodeCmd.Flags().StringVar(&decodeOutput, "output", "table", "Output format: table, json or xlsx")
	decodeCmd.Flags().StringVar(&decodeOut, "out", "", "Output file (required for xlsx, default stdout otherwise)")
	decodeCmd.Flags().StringVar(&decodeEncoding, "encoding", "auto", "File encoding: auto, utf-8, windows-1250 or iso-8859-2")
	decodeCmd.Flags().IntVar(&decodeWorkers, "workers", 0, "Records decoded in parallel (default from config or GOMAXPROCS)")
	decodeCmd.MarkFlagRequired("kind")
}

type decodeOptions struct {
	Kind     types.RecordKind
	Output   string
	Encoding charset.Encoding
	Workers  int
}

func runDecode(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	enc, err := charset.ParseEncoding(decodeEncoding)
	if err != nil {
		return err
	}

	workers := decodeWorkers
	if workers == 0 && cfg != nil {
		workers = cfg.Decode.Workers
	}

	logger.Info().Str("file", filePath).Msg("Reading file")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	opts := decodeOptions{
		Kind:     types.RecordKind(strings.ToLower(decodeKind)),
		Output:   strings.ToLower(decodeOutput),
		Encoding: enc,
		Workers:  workers,
	}
	if opts.Output == "xlsx" && decodeOut == "" {
		return fmt.Errorf("--out is required for xlsx output")
	}

	err = writeOutput(decodeOut, cmd.OutOrStdout(), func(out io.Writer) error {
		return decodeContent(cmd.Context(), content, opts, out, logger)
	})
	if err != nil {
		return err
	}
	if decodeOut != "" {
		logger.Info().Str("file", decodeOut).Msg("Wrote output")
	}
	return nil
}

// writeOutput renders to stdout when path is empty. Otherwise the output is
// buffered and the file is only written once render has succeeded.
func writeOutput(path string, stdout io.Writer, render func(io.Writer) error) error {
	if path == "" {
		return render(stdout)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// decodeContent transcodes content, decodes it as opts.Kind and writes the result
func decodeContent(ctx context.Context, content []byte, opts decodeOptions, out io.Writer, log *zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Encoding == charset.EncodingAuto {
		detected := charset.DetectEncoding(content)
		log.Debug().Str("encoding", string(detected)).Msg("Detected encoding")
		opts.Encoding = detected
	}
	data, err := charset.Decode(content, opts.Encoding)
	if err != nil {
		return err
	}

	decoder := decode.NewDecoder(decode.WithLogger(log), decode.WithWorkers(opts.Workers))

	switch opts.Kind {
	case types.KindPublication:
		result, err := decoder.Publications(ctx, data)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		return writeResult(out, opts.Output, result, export.PublicationColumns, export.PublicationsXLSX)
	case types.KindOffer:
		result, err := decoder.Offers(ctx, data)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		return writeResult(out, opts.Output, result, export.OfferColumns, export.OffersXLSX)
	}
	return fmt.Errorf("invalid kind: %s (use 'publication' or 'offer')", opts.Kind)
}

func writeResult[T any](
	out io.Writer,
	format string,
	result *types.DecodeResult[T],
	cols []export.Column[T],
	xlsx func(io.Writer, *types.DecodeResult[T]) error,
) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "xlsx":
		return xlsx(out, result)
	case "table":
		return writeTable(out, result, cols)
	}
	return fmt.Errorf("invalid output format: %s (use 'table', 'json' or 'xlsx')", format)
}

func writeTable[T any](out io.Writer, result *types.DecodeResult[T], cols []export.Column[T]) error {
	fmt.Fprintf(out, "Decoded %d of %d records (%d skipped, %d warnings)\n\n",
		result.ValidRecords, result.TotalRecords, len(result.Errors), len(result.Warnings))

	if err := export.Table(out, cols, result.Records); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nSkipped records:\n")
		for _, e := range result.Errors {
			field := "-"
			if e.Field != nil {
				field = *e.Field
			}
			fmt.Fprintf(out, "  #%s %s (field %s): %s\n", indexLabel(e.Index), e.Kind, field, e.Message)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  #%s %s: %s\n", indexLabel(w.Index), w.Field, w.Message)
		}
	}
	return nil
}

func indexLabel(i *int) string {
	if i == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *i)
}
