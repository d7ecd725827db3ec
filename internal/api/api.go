// Package api exposes the ledger over a JSON HTTP interface. Handlers are
// thin: they decode requests, call the service layer, and map errors to
// status codes. All routes live under /api/v1; everything except auth
// requires a bearer token.
package api

import (
	"net/http"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage"
)

// Server holds the services the handlers dispatch to.
type Server struct {
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	balances    *service.BalanceService
	auth        *service.AuthService
	store       storage.Store
	jwt         *auth.JWTManager
}

// NewServer creates a Server wired to the given store and JWT manager.
func NewServer(store storage.Store, jwtManager *auth.JWTManager) *Server {
	authenticator := auth.NewPasswordAuthenticator(store)
	return &Server{
		groups:      service.NewGroupService(store),
		expenses:    service.NewExpenseService(store),
		settlements: service.NewSettlementService(store),
		balances:    service.NewBalanceService(store),
		auth:        service.NewAuthService(authenticator, jwtManager),
		store:       store,
		jwt:         jwtManager,
	}
}

// Handler builds the route table. Auth endpoints are public; everything else
// goes through the JWT middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	requireAuth := middleware.RequireAuth(s.jwt)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(h))
	}

	protected("POST /api/v1/groups", s.handleCreateGroup)
	protected("GET /api/v1/groups", s.handleListGroups)
	protected("GET /api/v1/groups/{id}", s.handleGetGroup)
	protected("PUT /api/v1/groups/{id}", s.handleUpdateGroup)
	protected("DELETE /api/v1/groups/{id}", s.handleDeleteGroup)
	protected("POST /api/v1/groups/{id}/members", s.handleAddMembers)
	protected("DELETE /api/v1/groups/{id}/members/{member}", s.handleRemoveMember)

	protected("POST /api/v1/groups/{id}/expenses", s.handleCreateExpense)
	protected("GET /api/v1/groups/{id}/expenses", s.handleListExpenses)
	protected("GET /api/v1/expenses/{id}", s.handleGetExpense)
	protected("PUT /api/v1/expenses/{id}", s.handleUpdateExpense)
	protected("DELETE /api/v1/expenses/{id}", s.handleDeleteExpense)

	protected("POST /api/v1/groups/{id}/settlements", s.handleCreateSettlement)
	protected("GET /api/v1/groups/{id}/settlements", s.handleListSettlements)
	protected("DELETE /api/v1/settlements/{id}", s.handleDeleteSettlement)

	protected("GET /api/v1/groups/{id}/balances", s.handleGroupBalances)

	protected("GET /api/v1/groups/{id}/export", s.handleExportGroup)
	protected("POST /api/v1/import", s.handleImportGroup)

	protected("GET /api/v1/settings/{key}", s.handleGetSetting)
	protected("PUT /api/v1/settings/{key}", s.handlePutSetting)

	return mux
}
