package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultScale         = 1.0
)

// ChromedpConfig contains configuration for the chromedp printer
type ChromedpConfig struct {
	// Timeout for one print job
	Timeout time.Duration
	// RemoteURL is the DevTools websocket of a running Chrome.
	// If empty, chromedp launches a headless browser.
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Scale for rendering (default: 1.0)
	Scale  float64
	Logger *zap.Logger
}

// ChromedpPrinter prints HTML to PDF through the Chrome DevTools Protocol
type ChromedpPrinter struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpPrinter creates the browser allocator. No browser starts until
// the first Print call.
func NewChromedpPrinter(config ChromedpConfig) *ChromedpPrinter {
	if config.Timeout == 0 {
		config.Timeout = defaultChromeTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &ChromedpPrinter{config: config, logger: logger}
	if config.RemoteURL != "" {
		p.allocCtx, p.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
		return p
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return p
}

// Print renders html on a fresh tab and prints it to PDF
func (p *ChromedpPrinter) Print(ctx context.Context, html string, setup PageSetup) (*PrintResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	start := time.Now()
	timeout := setup.Timeout
	if timeout == 0 {
		timeout = p.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(p.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			p.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()
	// Tie the tab to the caller's deadline.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	doc := buildCompleteHTML(html, setup.Title)
	params := p.buildPrintParams(setup)

	var pdfData []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.action().Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		p.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &PrintResult{
		PDFData:        pdfData,
		PageCount:      estimatePageCount(pdfData),
		RenderDuration: time.Since(start),
	}
	p.logger.Debug("pdf printed",
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// Close stops the browser, if one was started
func (p *ChromedpPrinter) Close() error {
	if p.allocCancel != nil {
		p.allocCancel()
	}
	return nil
}

// printParams are PrintToPDF arguments in inches
type printParams struct {
	paperWidth          float64
	paperHeight         float64
	marginTop           float64
	marginRight         float64
	marginBottom        float64
	marginLeft          float64
	scale               float64
	landscape           bool
	displayHeaderFooter bool
	footerTemplate      string
}

func (p *ChromedpPrinter) buildPrintParams(setup PageSetup) printParams {
	params := printParams{
		paperWidth:   mmToInches(a4WidthMM),
		paperHeight:  mmToInches(a4HeightMM),
		marginTop:    mmToInches(setup.Margins.Top),
		marginRight:  mmToInches(setup.Margins.Right),
		marginBottom: mmToInches(setup.Margins.Bottom),
		marginLeft:   mmToInches(setup.Margins.Left),
		scale:        p.config.Scale,
		landscape:    setup.Landscape,
	}
	if setup.FooterHTML != "" {
		params.displayHeaderFooter = true
		params.footerTemplate = setup.FooterHTML
		if params.marginBottom < mmToInches(10) {
			params.marginBottom = mmToInches(10)
		}
	}
	return params
}

func (pp printParams) action() *page.PrintToPDFParams {
	a := page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(pp.paperWidth).
		WithPaperHeight(pp.paperHeight).
		WithMarginTop(pp.marginTop).
		WithMarginRight(pp.marginRight).
		WithMarginBottom(pp.marginBottom).
		WithMarginLeft(pp.marginLeft).
		WithScale(pp.scale).
		WithLandscape(pp.landscape).
		WithDisplayHeaderFooter(pp.displayHeaderFooter)
	if pp.displayHeaderFooter {
		// An empty header template would otherwise print Chrome's default.
		a = a.WithHeaderTemplate("<span></span>").WithFooterTemplate(pp.footerTemplate)
	}
	return a
}

// buildCompleteHTML wraps a fragment in a full document. Complete documents
// are returned as-is.
func buildCompleteHTML(html, title string) string {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\">")
	if title != "" {
		buf.WriteString("<title>")
		buf.WriteString(title)
		buf.WriteString("</title>")
	}
	buf.WriteString("</head><body>")
	buf.WriteString(html)
	buf.WriteString("</body></html>")
	return buf.String()
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// estimatePageCount counts page objects in the PDF, at least one
func estimatePageCount(pdf []byte) int {
	pages := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	if pages < 1 {
		return 1
	}
	return pages
}

var _ HTMLPrinter = (*ChromedpPrinter)(nil)
