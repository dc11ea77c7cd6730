package main

import (
	reportapp "github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// buildRenderers wires one renderer per export format. The returned func
// stops the browser behind the PDF renderer, if one was started.
func buildRenderers(cfg *config.Config, f *printing.Formatter, log *zap.Logger) (map[reportapp.Format]reportapp.Renderer, func(), error) {
	html, err := printing.NewHTMLRenderer(f)
	if err != nil {
		return nil, nil, err
	}
	pdf := printing.NewPDFRenderer(html, printing.NewChromedpPrinter(printing.ChromedpConfig{
		RemoteURL: cfg.Printing.ChromeRemoteURL,
		Timeout:   cfg.Printing.Timeout,
		NoSandbox: cfg.Printing.NoSandbox,
		Logger:    log.Named("chromedp"),
	}))

	renderers := map[reportapp.Format]reportapp.Renderer{
		reportapp.FormatHTML: html,
		reportapp.FormatXLSX: printing.NewXLSXRenderer(f),
		reportapp.FormatPDF:  pdf,
	}
	return renderers, func() { _ = pdf.Close() }, nil
}
