package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/auth"
	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/ledger-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-api/internal/infrastructure/tally"
	httpRouter "github.com/jhoicas/ledger-api/internal/interfaces/http"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// repos adaptadores de persistencia según DB_DRIVER.
type repos struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	parties      repository.PartyRepository
	documents    repository.DocumentRepository
	accountHeads repository.AccountHeadRepository
	expenses     repository.ExpenseRepository
	bankAccounts repository.BankAccountRepository
	txRunner     billing.DocumentTxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openRepos(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer r.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	authUC := auth.NewAuthUseCase(r.users, r.companies, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	documentUC := billing.NewDocumentUseCase(r.txRunner, r.documents, r.parties, recorder, billing.DocumentOptions{
		StrictSlabs: cfg.Ledger.StrictSlabs,
	})
	pdfUC := billing.NewPDFUseCase(r.documents, r.companies, r.parties, infrapdf.NewMarotoPDFGenerator())
	exportUC := billing.NewExportUseCase(r.documents, r.companies, r.parties, tally.NewVoucherBuilder(tally.DefaultLedgers()))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(recorder.Middleware())

	// Swagger UI en local (http://localhost:<port>/docs) si existe el swagger.json generado por swag
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(r.companies),
		UserUC:      usecase.NewUserUseCase(r.users),
		PartyUC:     usecase.NewPartyUseCase(r.parties),
		AccountUC:   usecase.NewAccountUseCase(r.accountHeads, r.bankAccounts),
		ExpenseUC:   usecase.NewExpenseUseCase(r.expenses, r.accountHeads, r.bankAccounts),
		DocumentUC:  documentUC,
		DocumentPDF: pdfUC,
		Export:      exportUC,
		DashboardUC: appanalytics.NewDashboardUseCase(r.documents, r.expenses),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepos construye los adaptadores: memoria (demo/local) o PostgreSQL con migraciones embebidas.
func openRepos(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.DB.Driver == "memory" {
		store := memory.New()
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		return &repos{
			companies:    store.Companies(),
			users:        store.Users(),
			parties:      store.Parties(),
			documents:    store.Documents(),
			accountHeads: store.AccountHeads(),
			expenses:     store.Expenses(),
			bankAccounts: store.BankAccounts(),
			txRunner:     store.TxRunner(),
			close:        func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		companies:    postgres.NewCompanyRepository(pool),
		users:        postgres.NewUserRepository(pool),
		parties:      postgres.NewPartyRepository(pool),
		documents:    postgres.NewDocumentRepository(pool),
		accountHeads: postgres.NewAccountHeadRepository(pool),
		expenses:     postgres.NewExpenseRepository(pool),
		bankAccounts: postgres.NewBankAccountRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
