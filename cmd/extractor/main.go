package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/export"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/pipeline"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "extractor",
		Short: "Extract structured outline records from bid and contract documents",
		Long: `Extractor turns PDF, Word, Markdown, and plain-text documents into
structured outline records driven by sample headings.

Give it one heading of each outline level from your document and it
extracts every module, sub-item, and description into a spreadsheet:

  extractor extract 标书.pdf --level1 "9.1" --level2 "9.1.1"
  extractor extract 招标文件.docx --mode table --format csv
  extractor extract a.pdf b.docx --level1 "第一章" --out 结果.xlsx`,
		Version: version.Version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract records from one or more documents",
		Long: `Extract outline records from the given documents and write them to a
single spreadsheet.

Sample headings teach the extractor what each outline level looks like.
--level1 is required for outline scanning; --level2, --level3, and --end
are optional. Word documents with a quotation table need no samples at
all (--mode table, or the default auto mode).

Example:
  extractor extract 标书.pdf --level1 "9.1" --level2 "9.1.1" --level3 "9.1.1.1"
  extractor extract 招标.docx --mode auto --level1 "9.1" --format csv`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level1, _ := cmd.Flags().GetString("level1")
			level2, _ := cmd.Flags().GetString("level2")
			level3, _ := cmd.Flags().GetString("level3")
			end, _ := cmd.Flags().GetString("end")
			mode, _ := cmd.Flags().GetString("mode")
			class, _ := cmd.Flags().GetString("class")
			out, _ := cmd.Flags().GetString("out")
			format, _ := cmd.Flags().GetString("format")
			maxCellLen, _ := cmd.Flags().GetInt("max-cell-len")
			pdftotext, _ := cmd.Flags().GetString("pdftotext")

			if !pipeline.ValidMode(mode) {
				return fmt.Errorf("invalid mode %q (use auto, outline, or table)", mode)
			}
			if format != "xlsx" && format != "csv" {
				return fmt.Errorf("invalid format %q (use xlsx or csv)", format)
			}
			if !document.ValidClassName(class) {
				return fmt.Errorf("invalid class %q (use auto, bid, or contract)", class)
			}

			samples := extract.Samples{
				Level1: strings.TrimSpace(level1),
				Level2: strings.TrimSpace(level2),
				Level3: strings.TrimSpace(level3),
				End:    strings.TrimSpace(end),
			}
			if mode == pipeline.ModeOutline {
				if err := samples.Validate(); err != nil {
					return err
				}
			}
			if samples.Level1 != "" {
				if err := extract.CompileSamples(samples); err != nil {
					return fmt.Errorf("invalid samples: %w", err)
				}
			}

			opts := pipeline.ExtractOptions{
				Samples:      samples,
				Mode:         mode,
				Class:        class,
				MaxCellLen:   maxCellLen,
				PdftotextBin: pdftotext,
			}

			var records []extract.Record
			var failed int
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failed++
					continue
				}

				recs, lines, err := pipeline.ExtractFile(pipeline.JobFile{Name: path, Data: data}, opts)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failed++
					continue
				}

				fmt.Printf("%s: %d lines, %d records\n", path, lines, len(recs))
				records = append(records, recs...)
			}

			if failed == len(args) {
				return fmt.Errorf("all %d file(s) failed", failed)
			}
			if len(records) == 0 {
				return fmt.Errorf("no records extracted")
			}

			if out == "" {
				out = "提取结果." + format
			}

			var written string
			var err error
			switch format {
			case "csv":
				written, err = export.SaveCSV(out, records)
			default:
				written, err = export.SaveXLSX(out, records)
			}
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Printf("wrote %d records to %s\n", len(records), written)
			if failed > 0 {
				fmt.Fprintf(os.Stderr, "%d file(s) skipped\n", failed)
			}
			return nil
		},
	}

	cmd.Flags().String("level1", "", "Sample level-1 heading (e.g. \"9.1\" or \"第一章\")")
	cmd.Flags().String("level2", "", "Sample level-2 heading (e.g. \"9.1.1\")")
	cmd.Flags().String("level3", "", "Sample level-3 heading (e.g. \"9.1.1.1\")")
	cmd.Flags().String("end", "", "Sample heading that ends the extraction range")
	cmd.Flags().String("mode", "", "Extraction mode: auto, outline, or table (default auto)")
	cmd.Flags().String("class", "", "Document class: auto, bid, or contract (default auto)")
	cmd.Flags().StringP("out", "o", "", "Output path (default 提取结果.xlsx)")
	cmd.Flags().StringP("format", "f", "xlsx", "Output format: xlsx or csv")
	cmd.Flags().Int("max-cell-len", extract.DefaultMaxCellLength, "Split descriptions longer than this many runes")
	cmd.Flags().String("pdftotext", "pdftotext", "pdftotext binary for PDF fallback (empty disables)")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the extractor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Version)
		},
	}
}
