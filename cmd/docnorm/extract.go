package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/docnorm"
)

func extractCmd(a *app) *cobra.Command {
	var out string
	var noImages, noTables, noOCR bool
	var startPage, endPage int

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a document into structured JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, err := a.pipeline()
			if err != nil {
				return err
			}

			ext := pipe.Open(args[0]).
				IncludeImages(!noImages).
				IncludeTables(!noTables).
				UseOCR(!noOCR)
			if cmd.Flags().Changed("start-page") || cmd.Flags().Changed("end-page") {
				if endPage <= 0 {
					return fmt.Errorf("--end-page is required with --start-page")
				}
				ext = ext.PageRange(max(startPage, 1), endPage)
			}

			doc, warnings, err := ext.Extract(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), out, doc); err != nil {
				return err
			}

			if out != "" {
				stderr := cmd.ErrOrStderr()
				fmt.Fprintf(stderr, "Extracted %s (%s) to %s\n", doc.FileName, doc.Format, out)
				fmt.Fprintf(stderr, "Units: %d  Words: %d  Images: %d  Tables: %d\n",
					len(doc.Units), doc.TotalWords, doc.TotalImages, doc.TotalTables)
				if doc.OCRUsed {
					fmt.Fprintln(stderr, "OCR was used for image-based pages")
				} else if doc.TotalWords == 0 && !doc.OCRAvailable {
					fmt.Fprintln(stderr, "No text found and OCR is unavailable; the document may be image-based")
				}
			}
			if len(warnings) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), docnorm.FormatWarnings(warnings))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "skip image metadata")
	cmd.Flags().BoolVar(&noTables, "no-tables", false, "skip table detection")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "do not OCR pages without a text layer")
	cmd.Flags().IntVar(&startPage, "start-page", 0, "first PDF page to extract (1-indexed)")
	cmd.Flags().IntVar(&endPage, "end-page", 0, "last PDF page to extract (inclusive)")
	return cmd
}

func infoCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "info <pdf>",
		Short: "Report page count, word estimate and chunk plan for a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, err := a.pipeline()
			if err != nil {
				return err
			}
			info, err := pipe.Open(args[0]).Info(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out, info)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}
