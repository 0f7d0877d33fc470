package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"impractical.co/lantern"
	"impractical.co/lantern/internal/config"
	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/pages"
	"impractical.co/lantern/internal/server"
	"impractical.co/lantern/internal/session"
)

// serve runs the web server until ctx is done or the process is
// interrupted, then shuts it down gracefully.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = lantern.LoggingContext(ctx, logger)

	client, err := content.NewClient(cfg.ContentAPI.BaseURL, content.WithTimeout(cfg.GetContentTimeout()))
	if err != nil {
		return err
	}

	sessions, err := session.Open(cfg.Session.DatabasePath, cfg.GetSessionTTL())
	if err != nil {
		return err
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.ErrorContext(ctx, "error closing session database", "error", err)
		}
	}()

	var templates fs.FS
	if cfg.Server.TemplateDir != "" {
		templates = os.DirFS(cfg.Server.TemplateDir)
	}
	site := pages.NewSite(cfg.Site.Name, templates)
	if cfg.Server.TemplateDir != "" {
		watcher, err := lantern.WatchTemplates(ctx, cfg.Server.TemplateDir, site)
		if err != nil {
			return err
		}
		defer watcher.Close()
		logger.InfoContext(ctx, "reloading templates on change", "dir", cfg.Server.TemplateDir)
	}

	handler := server.New(server.Options{
		Site:            site,
		Client:          client,
		Sessions:        sessions,
		ContactEndpoint: cfg.ContentAPI.ContactEndpoint,
		Cookies: session.CookieOptions{
			Secure: cfg.Session.SecureCookies,
			MaxAge: cfg.GetSessionTTL(),
		},
		Logger: logger,
	}).Handler()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.GetReadTimeout(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.GetWriteTimeout(),
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "listening", "addr", cfg.Server.Addr, "content_api", cfg.ContentAPI.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.GetShutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
