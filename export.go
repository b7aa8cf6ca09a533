package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cardsmith/internal/render"
)

var (
	exportFormat string
	exportOut    string
	exportScale  float64
)

var exportCmd = &cobra.Command{
	Use:   "export [template]",
	Short: "Render a card template to PNG, PDF or text without opening the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := firstNonEmpty(templatePath, cfg.Template)
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := loadDocument(path)
		if err != nil {
			return err
		}

		format, err := exportFormatFor(exportFormat, exportOut)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = exportName(path, format)
		}
		if out, err = cfg.ExportPath(out); err != nil {
			return err
		}

		if format == render.FormatPNG && exportScale != 1 {
			err = render.ExportPNG(out, doc, exportScale)
		} else {
			err = render.Export(out, format, doc)
		}
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", format, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "png, pdf or txt (default from --out, else png)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
	exportCmd.Flags().Float64Var(&exportScale, "scale", 1, "PNG pixel scale")
}

// exportFormatFor picks the explicit format, then the output extension,
// then PNG.
func exportFormatFor(flag, out string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if ext := filepath.Ext(out); ext != "" {
		return render.ParseFormat(ext)
	}
	return render.FormatPNG, nil
}

func exportName(template string, format render.Format) string {
	base := "card"
	if template != "" {
		base = strings.TrimSuffix(filepath.Base(template), filepath.Ext(template))
	}
	return base + format.Ext()
}
