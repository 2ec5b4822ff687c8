package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiryu-dev/lcu-relay/internal/adapters/settings"
	"github.com/kiryu-dev/lcu-relay/internal/adapters/webapi"
	"github.com/kiryu-dev/lcu-relay/internal/config"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/registry"
	"github.com/kiryu-dev/lcu-relay/internal/transport/console"
	"github.com/kiryu-dev/lcu-relay/internal/transport/ws"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/classifier"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/dispatcher"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/friendlist"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/relay"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/repaint"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/session"
	"github.com/kiryu-dev/lcu-relay/pkg/mailbox"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	clearScreen     = "\033[H\033[J"
	shutdownTimeout = 2 * time.Second
)

var errRelayStopped = errors.New("relay worker stopped")

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	envPath := flag.String("env", ".env", "path to env file with client credentials")
	flag.Parse()
	if err := godotenv.Load(*envPath); err != nil {
		logger.Info("env file not loaded", zap.String("path", *envPath), zap.Error(err))
	}
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	settingsRepo := settings.New(cfg.SettingsPath)
	prefs, err := settingsRepo.Load()
	if err != nil {
		logger.Fatal(err.Error())
	}

	errGroup, ctx := errgroup.WithContext(context.Background())
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})

	var (
		toRelay   = mailbox.New[domain.ControlMessage]()
		fromRelay = mailbox.New[domain.ControlMessage]()
		commands  = mailbox.New[string]()
		reg       = registry.New()
		api       = webapi.New(cfg.Client)
		painter   = repaint.New()
		friends   = friendlist.New(api, &prefs.Friends, logger)
		sess      = session.New(api, api, &prefs.Game, cfg.UI.NotificationTTL, logger)
		handler   = console.NewHandler(sess, friends)
	)
	policy := relay.Policy{
		ReconnectAttempts: cfg.Stream.ReconnectAttempts,
		ReconnectBackoff:  cfg.Stream.ReconnectBackoff,
	}
	primary := domain.ConnID(cfg.Stream.ConnectionID)
	// outlives the errgroup context: the DeleteConnection sent on shutdown must still be served
	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()
	worker := relay.Spawn(relayCtx, fromRelay.In(), toRelay.Out(), ws.NewFactory(cfg.Client), classifier.New(logger),
		reg, policy, logger)
	dispatch := dispatcher.New(fromRelay.Out(), toRelay.In(), reg, sess, friends, painter, primary, logger)
	if err := friends.Reload(ctx); err != nil {
		logger.Warn("initial friend list not loaded", zap.Error(err))
	}
	dispatch.Connect(primary)
	go readCommands(commands.In())

	errGroup.Go(func() error {
		ticker := time.NewTicker(cfg.UI.Tick)
		defer ticker.Stop()
		shown := 0
		lines := commands.Out()
		painter.RequestRepaint()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-worker.Done():
				return errRelayStopped
			case line, ok := <-lines:
				if !ok {
					lines = nil
					continue
				}
				if err := handler.Handle(ctx, line); err != nil {
					logger.Info("command failed", zap.String("command", line), zap.Error(err))
				}
				painter.RequestRepaint()
			case <-ticker.C:
				dispatch.Drain(ctx)
			case <-painter.C():
			}
			notifications := sess.Notifications()
			if len(notifications) != shown {
				shown = len(notifications)
				painter.RequestRepaint()
			}
			if !painter.Take() {
				continue
			}
			fmt.Print(clearScreen)
			view := console.View{
				Session:       sess.State(),
				Notifications: notifications,
				Friends:       friends.Entries(),
				AutoAccept:    prefs.Game.AutoAccept,
			}
			if err := console.Render(os.Stdout, view); err != nil {
				return errors.WithMessage(err, "render view")
			}
		}
	})

	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the launcher: " + err.Error())
	}
	dispatch.Disconnect(primary)
	toRelay.Close()
	select {
	case <-worker.Done():
	case <-time.After(shutdownTimeout):
		logger.Warn("relay worker did not stop in time")
	}
	stopRelay()
	if err := settingsRepo.Save(prefs); err != nil {
		logger.Error("failed to save settings", zap.Error(err))
	}
}

func readCommands(out chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	close(out)
}
