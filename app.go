package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"store-ticket-bot/bot"
	"store-ticket-bot/bot/messages"
	"store-ticket-bot/internal/config"
	"store-ticket-bot/internal/database"
	"store-ticket-bot/internal/discord/client"
	"store-ticket-bot/internal/logger"
	"store-ticket-bot/internal/storeconfig_parser"
	"store-ticket-bot/internal/ticket"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/fsnotify.v1"
)

func main() {
	var (
		configFile = flag.String("config", "./config/config.yml", "path to the bot config")
		storeFile  = flag.String("store", "", "path to the store config, overrides store_config")
		loggerFile = flag.String("logger", "", "path to the logger config, overrides logger_config")
		debug      = flag.Bool("debug", false, "print debug information on stderr")
	)

	flag.Parse()

	cnf := config.GetConfig(*configFile)
	cnf.RunInDebug = *debug
	if *storeFile != "" {
		cnf.StoreConfig = *storeFile
	}
	if *loggerFile != "" {
		cnf.LoggerConfig = *loggerFile
	}

	if logFile := logger.InitLogger(*debug, cnf.LoggerConfig); logFile != nil {
		defer logFile.Close()
	}
	logger.Info("Application starting...")

	if *debug {
		logger.Debug("Config:", cnf.Server, cnf.Tickets.Delay(), cnf.Welcome, cnf.StoreConfig)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storeconfig_parser.LoadStore(cnf.StoreConfig)
	if err != nil {
		logger.Crit("Error while loading store config:", err)
	}

	cache, err := database.ConnectInMemoryCache(database.EVENT_TTL)
	if err != nil {
		logger.Crit("Error while creating event cache:", err)
	}
	events := database.NewEventLog(cache)
	defer events.Close()

	dc, err := client.New(cnf.Discord.Token)
	if err != nil {
		logger.Crit("Error while creating Discord session:", err)
	}

	kinds := store.Get().Descriptors()
	render := messages.NewRenderer(store)
	registry := ticket.NewRegistry()
	scheduler := ticket.NewScheduler()

	router := bot.NewRouter(bot.Deps{
		Gateway:     dc,
		Store:       store,
		Renderer:    render,
		Registry:    registry,
		Provisioner: ticket.NewProvisioner(registry, dc, render, kinds),
		Closer:      ticket.NewCloser(registry, dc, scheduler, kinds, cnf.Tickets.Delay()),
		Events:      events,
		Welcome:     bot.NewWelcomeSwitch(cnf.Welcome.Enabled),
		Prefix:      cnf.Discord.Prefix,
	})

	app := gin.New()
	app.Use(gin.Recovery())
	if *debug {
		app.Use(gin.Logger())
	}

	bot.InitHooks(app, dc, router)

	if err := dc.Open(); err != nil {
		logger.Crit("Error while connecting to Discord:", err)
	}

	srv := &http.Server{
		Addr:    cnf.Server.Listen,
		Handler: app,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening on", cnf.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return watchStore(gCtx, store)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Catch OS signal! Exiting...")

		scheduler.Shutdown()
		if err := dc.Close(); err != nil {
			logger.Warning("Error while closing Discord session:", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info("Application started")

	if err := g.Wait(); err != nil {
		logger.Warning("App stopped with error:", err)
		os.Exit(1)
	}

	logger.Info("Application stopped correctly!")
}

// watchStore reloads the store config when its file changes. Ticket kinds,
// prefixes and names stay as loaded at startup; the rest is picked up live.
func watchStore(ctx context.Context, store *storeconfig_parser.Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// следим за папкой: редакторы часто пересоздают файл
	if err := watcher.Add(filepath.Dir(store.Path())); err != nil {
		return err
	}
	target := filepath.Clean(store.Path())

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debug("Store config event:", event)
			if err := store.Update(); err != nil {
				logger.Warning("Invalid store config, keeping the previous one:", err)
				continue
			}
			logger.Info("Store config reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warning("Store config watcher error:", err)
		}
	}
}
