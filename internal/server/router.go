package server

import (
	"net/http"

	ordercontroller "comanda/internal/order/controller"
	"comanda/internal/product"
	"comanda/internal/session"
	"comanda/internal/table"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(
	sessionCtrl *session.Controller,
	orderCtrl *ordercontroller.OrdersController,
	productCtrl *product.Controller,
	tableCtrl *table.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Route("/tables-sessions", func(r chi.Router) {
		r.Post("/", sessionCtrl.HandleOpenSession)
		r.Get("/", sessionCtrl.HandleListSessions)
		r.Patch("/{id}", sessionCtrl.HandleCloseSession)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.HandleCreateOrder)
		r.Get("/table-session/{table_session_id}", orderCtrl.HandleListOrders)
		r.Get("/table-session/{table_session_id}/total", orderCtrl.HandleSummarizeOrders)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productCtrl.HandleListProducts)
		r.Post("/", productCtrl.HandleCreateProduct)
		r.Put("/{id}", productCtrl.HandleUpdateProduct)
		r.Delete("/{id}", productCtrl.HandleDeleteProduct)
	})

	r.Get("/tables", tableCtrl.HandleListTables)

	return r
}
