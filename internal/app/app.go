package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/kafka"
	"github.com/niksmo/catalog/internal/adapter/scheduler"
	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type repositories struct {
	products   storage.ProductsRepository
	categories storage.CategoriesRepository
	brands     storage.BrandsRepository
	reviews    storage.ReviewsRepository
	orders     storage.OrdersRepository
	invoices   storage.InvoiceCounter
	districts  storage.DistrictsRepository
	tags       storage.TagsRepository
}

type coreServices struct {
	catalog    service.Service
	categories service.CategoryService
	orders     service.OrderService
	districts  service.DistrictService
	tags       service.TagService
	feeds      service.FeedService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsConfig  *tls.Config
	db         storage.MongoDB
	repos      repositories
	feedSerde  schema.Serde
	producer   kafka.InventoryFeedProducer
	reports    *kafka.FeedReportsView
	processor  *kafka.InventoryFeedProcessor
	service    coreServices
	scheduler  *scheduler.Scheduler
	httpServer httphandler.HTTPServer
	wg         *sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, wg: &sync.WaitGroup{}}

	app.initLogger()
	app.initTLS()
	app.initStorage()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initProcessor()
	app.initScheduler()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	t := app.cfg.Broker.TLS
	if !t.Enabled() {
		return
	}

	tlsConfig, err := adapter.MakeTLSConfig(t.CAFile, t.CertFile, t.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	kafka.ApplyTLS(tlsConfig)
	app.tlsConfig = tlsConfig
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	m := app.cfg.Mongo
	db, err := storage.NewMongoDB(app.ctx, m.URI, m.Database, storage.PoolConfig{
		MaxPoolSize:            m.MaxPoolSize,
		MinPoolSize:            m.MinPoolSize,
		MaxConnIdleTime:        m.MaxIdleTime,
		ServerSelectionTimeout: m.ServerSelectionTimeout,
		SocketTimeout:          m.SocketTimeout,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.db = db
	app.repos = repositories{
		products:   storage.NewProductsRepository(db),
		categories: storage.NewCategoriesRepository(db),
		brands:     storage.NewBrandsRepository(db),
		reviews:    storage.NewReviewsRepository(db),
		orders:     storage.NewOrdersRepository(db),
		invoices:   storage.NewInvoiceCounter(db),
		districts:  storage.NewDistrictsRepository(db),
		tags:       storage.NewTagsRepository(db),
	}
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	feedSS := app.cfg.Broker.Topics.InventoryFeed + "-value"
	feedSerde, err := schema.NewSerdeInventoryFeedV1(
		app.ctx,
		schema.SubjectOpt(feedSS),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.feedSerde = feedSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	seedBrokers := app.cfg.Broker.SeedBrokers

	producer, err := kafka.NewInventoryFeedProducer(
		kafka.ProducerClientOpt(
			app.ctx, seedBrokers, app.cfg.Broker.Topics.InventoryFeed, app.tlsConfig,
		),
		kafka.ProducerEncoderOpt(app.feedSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	reports, err := kafka.NewFeedReportsView(
		seedBrokers, app.cfg.Broker.Consumers.InventoryFeedGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producer = producer
	app.reports = reports
}

func (app *App) initCoreService() {
	r := app.repos
	app.service = coreServices{
		catalog: service.New(
			r.products, r.categories, r.brands, r.reviews,
			service.BatchSizeOpt(app.cfg.Inventory.BatchSize),
		),
		categories: service.NewCategoryService(r.categories),
		orders:     service.NewOrderService(r.orders, r.districts, r.products, r.invoices),
		districts:  service.NewDistrictService(r.districts),
		tags:       service.NewTagService(r.tags),
		feeds:      service.NewFeedService(app.producer, app.reports),
	}
}

func (app *App) initProcessor() {
	const op = "App.initProcessor"

	p, err := kafka.NewInventoryFeedProc(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.InventoryFeed,
		app.cfg.Broker.Consumers.InventoryFeedGroup,
		app.feedSerde,
		app.service.catalog,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.processor = p
}

func (app *App) initScheduler() {
	const op = "App.initScheduler"

	jobs := app.cfg.Jobs
	s := scheduler.New(jobs.Timeout)

	err := s.Add("reconcile-categories", jobs.ReconcileSchedule,
		scheduler.ReconcileJob(app.service.catalog),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	err = s.Add("clear-expired-discounts", jobs.DiscountSchedule,
		scheduler.DiscountJob(app.service.catalog),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.scheduler = s
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(
		mux, app.service.catalog, app.service.catalog, app.service.catalog,
	)
	httphandler.RegisterCategories(mux, app.service.categories)
	httphandler.RegisterInventory(mux, app.service.feeds)
	httphandler.RegisterOrders(mux, app.service.orders)
	httphandler.RegisterDistricts(mux, app.service.districts)
	httphandler.RegisterTags(mux, app.service.tags)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.HTTPRequestTimeout,
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.wg.Add(2)
	go app.reports.Run(app.ctx, stopFn, app.wg)
	go app.processor.Run(app.ctx, stopFn, app.wg)

	app.scheduler.Start()
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.scheduler.Stop(ctx)
	app.processor.Close()
	app.producer.Close()
	app.wg.Wait()
	app.db.Close(ctx)

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
