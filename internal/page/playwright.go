package page

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/playwright-community/playwright-go"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/retry"
	"go.uber.org/fx"
)

// ErrBrowserDisabled is returned when a URL must be rendered but no browser runs.
var ErrBrowserDisabled = errors.New("browser rendering is disabled, supply page markup")

// PlaywrightManager owns the headless browser used to render company pages.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.Config
	logger  logger.Logger
}

var _ Opener = (*PlaywrightManager)(nil)

func NewPlaywrightManager(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*PlaywrightManager, error) {
	log = log.WithComponent("Playwright")
	log.Info("Initializing Playwright")

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Browser.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	m := &PlaywrightManager{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
		logger:  log,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Playwright browser")
			if err := m.browser.Close(); err != nil {
				log.Error("Failed to close playwright browser", "error", err)
			}
			if err := m.pw.Stop(); err != nil {
				log.Error("Failed to stop playwright", "error", err)
				return err
			}
			return nil
		},
	})
	return m, nil
}

func (m *PlaywrightManager) Open(ctx context.Context, url string) (Page, func(), error) {
	opts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(m.cfg.Browser.UserAgent),
	}
	if m.cfg.Browser.StorageStatePath != "" {
		opts.StorageStatePath = playwright.String(m.cfg.Browser.StorageStatePath)
	}

	brContext, err := m.browser.NewContext(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create browser context: %w", err)
	}

	cleanup := func() {
		if err := brContext.Close(); err != nil {
			m.logger.Warn("Failed to close browser context", "error", err)
		}
		debug.FreeOSMemory()
	}

	if err := blockHeavyResources(brContext); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to set up request interception: %w", err)
	}

	p, err := brContext.NewPage()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("could not create new page: %w", err)
	}

	timeout := float64(m.cfg.Browser.NavigationTimeout.Milliseconds())
	gotoOperation := func() error {
		_, err := p.Goto(url, playwright.PageGotoOptions{
			Timeout:   playwright.Float(timeout),
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		})
		return err
	}
	if err := retry.Do(ctx, m.logger, "PageGoto", gotoOperation, retry.DefaultConfig()); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("could not goto page '%s' after retries: %w", url, err)
	}

	return &livePage{url: url, page: p}, cleanup, nil
}

// blockHeavyResources skips downloads that never change the markup.
func blockHeavyResources(ctx playwright.BrowserContext) error {
	return ctx.Route("**/*", func(route playwright.Route) {
		switch route.Request().ResourceType() {
		case "image", "font", "media":
			_ = route.Abort()
		default:
			_ = route.Continue()
		}
	})
}

type livePage struct {
	url  string
	page playwright.Page
}

func (l *livePage) URL() string {
	if u := l.page.URL(); u != "" {
		return u
	}
	return l.url
}

func (l *livePage) Snapshot(ctx context.Context) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	markup, err := l.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return dom.Parse(markup)
}

func (l *livePage) Scroll(ctx context.Context, dy int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := l.page.Evaluate("(dy) => window.scrollBy(0, dy)", dy); err != nil {
		return fmt.Errorf("failed to scroll page: %w", err)
	}
	return nil
}

// DisabledOpener is used when no browser is configured.
type DisabledOpener struct{}

func (DisabledOpener) Open(context.Context, string) (Page, func(), error) {
	return nil, nil, ErrBrowserDisabled
}
