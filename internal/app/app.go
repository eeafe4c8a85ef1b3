package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/cartapi"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/syncer"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx context.Context
	cfg config.Config

	kv            storage.KV
	notices       *notify.Feed
	cartSyncer    *syncer.CartSyncer
	wishSyncer    *syncer.WishlistSyncer
	eventSerde    schema.Serde
	producer      kafka.CartEventsProducer
	activityProc  *kafka.CartActivityProcessor
	activityView  *kafka.ActivityView
	service       *service.Service
	httpServer    httphandler.HTTPServer
	procWaitGroup sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSyncers()
	app.initSerde()
	app.initEventsProducer()
	app.initActivity()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	kv, err := storage.New(app.cfg.StoragePath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv
	app.notices = notify.NewFeed()
}

func (app *App) initSyncers() {
	const op = "App.initSyncers"

	remoteCfg := cartapi.Config{
		BaseURL:     app.cfg.Remote.BaseURL,
		Timeout:     app.cfg.Remote.Timeout,
		MaxAttempts: app.cfg.Remote.MaxAttempts,
	}
	if tc := app.cfg.Remote.TLS; tc.Enabled() {
		remoteCfg.TLSConfig = adapter.MakeTLSConfig(tc.CA, tc.Cert, tc.Key)
	}

	client, err := cartapi.New(remoteCfg)
	if err != nil {
		app.fallDown(op, err)
	}

	app.cartSyncer = syncer.NewCartSyncer(
		client, app.notices, app.cfg.Sync.DebounceWindow,
	)
	app.wishSyncer = syncer.NewWishlistSyncer(client, app.notices)
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.CartEvents + "-value"
	eventSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CartEvents,
		),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initActivity() {
	const op = "App.initActivity"

	proc, err := kafka.NewCartActivityProc(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.CartEvents,
		app.cfg.Broker.Consumers.ActivityGroup,
		app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewActivityView(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Consumers.ActivityGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.activityProc = proc
	app.activityView = view
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	rounding, err := domain.ParseRounding(app.cfg.PriceRounding)
	if err != nil {
		app.fallDown(op, err)
	}

	svc := service.New(
		rounding,
		app.cartSyncer,
		app.wishSyncer,
		storage.NewCartRepository(app.kv),
		storage.NewWishlistRepository(app.kv),
		app.producer,
		app.notices,
	)

	// the syncer reports server-assigned item ids back to the service
	app.cartSyncer.SetItemBinder(svc)
	app.service = svc
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterWishlist(mux, app.service)
	httphandler.RegisterSession(mux, app.service)
	httphandler.RegisterNotices(mux, app.notices)
	httphandler.RegisterActivity(mux, app.activityView)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.procWaitGroup.Add(1)
	go app.activityProc.Run(app.ctx, stopFn, &app.procWaitGroup)
	go app.activityView.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.cartSyncer.Close()
	app.activityProc.Close()
	app.procWaitGroup.Wait()
	app.producer.Close()
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
