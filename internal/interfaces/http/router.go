package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/auth"
	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	PartyUC     *usecase.PartyUseCase
	AccountUC   *usecase.AccountUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	DocumentUC  *billing.DocumentUseCase
	DocumentPDF *billing.PDFUseCase
	Export      *billing.ExportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Lectura: cualquier rol. Escritura: admin y accountant. Usuarios y empresa: solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y alta de empresa (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleAccountant, entity.RoleViewer)
	writer := RequireRole(entity.RoleAdmin, entity.RoleAccountant)
	admin := RequireRole(entity.RoleAdmin)

	protected.Get("/companies/me", anyRole, companyHandler.Me)
	protected.Put("/companies/me", admin, companyHandler.UpdateMe)

	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users := protected.Group("/users", admin)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)

	partyHandler := NewPartyHandler(deps.PartyUC)
	parties := protected.Group("/parties")
	parties.Get("/", anyRole, partyHandler.List)
	parties.Get("/:id", anyRole, partyHandler.Get)
	parties.Post("/", writer, partyHandler.Create)
	parties.Put("/:id", writer, partyHandler.Update)
	parties.Delete("/:id", writer, partyHandler.Delete)

	docHandler := NewDocumentHandler(deps.DocumentUC, deps.DocumentPDF, deps.Export)
	docs := protected.Group("/documents")
	docs.Post("/preview", anyRole, docHandler.Preview)
	docs.Get("/", anyRole, docHandler.List)
	docs.Get("/:id", anyRole, docHandler.Get)
	docs.Get("/:id/pdf", anyRole, docHandler.PDF)
	docs.Get("/:id/tally", anyRole, docHandler.TallyXML)
	docs.Post("/", writer, docHandler.Create)
	docs.Put("/:id", writer, docHandler.Update)
	docs.Post("/:id/post", writer, docHandler.Post)
	docs.Delete("/:id", writer, docHandler.Delete)

	accountHandler := NewAccountHandler(deps.AccountUC)
	heads := protected.Group("/account-heads")
	heads.Get("/", anyRole, accountHandler.ListHeads)
	heads.Get("/:id", anyRole, accountHandler.GetHead)
	heads.Post("/", writer, accountHandler.CreateHead)
	heads.Put("/:id", writer, accountHandler.UpdateHead)
	heads.Delete("/:id", writer, accountHandler.DeleteHead)

	banks := protected.Group("/bank-accounts")
	banks.Get("/", anyRole, accountHandler.ListBankAccounts)
	banks.Get("/:id", anyRole, accountHandler.GetBankAccount)
	banks.Post("/", writer, accountHandler.CreateBankAccount)
	banks.Put("/:id", writer, accountHandler.UpdateBankAccount)
	banks.Delete("/:id", writer, accountHandler.DeleteBankAccount)

	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := protected.Group("/expenses")
	expenses.Get("/summary", anyRole, expenseHandler.Summary)
	expenses.Get("/", anyRole, expenseHandler.List)
	expenses.Get("/:id", anyRole, expenseHandler.Get)
	expenses.Post("/", writer, expenseHandler.Create)
	expenses.Put("/:id", writer, expenseHandler.Update)
	expenses.Delete("/:id", writer, expenseHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)
}
