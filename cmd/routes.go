package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	userAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	modelAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole("model"))
	anyAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))

	mux := pat.New()

	// Accounts
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/user/profile", userAuth.ThenFunc(app.userHandler.GetProfile))
	mux.Post("/model/sign_up", standardMiddleware.ThenFunc(app.modelHandler.SignUp))
	mux.Post("/model/sign_in", standardMiddleware.ThenFunc(app.modelHandler.SignIn))

	// Model directory
	mux.Get("/models", anyAuth.ThenFunc(app.modelHandler.GetModels))
	mux.Get("/model/:id", anyAuth.ThenFunc(app.modelHandler.GetModelByID))
	mux.Put("/model/online", modelAuth.ThenFunc(app.modelHandler.SetOnline))

	// Booking lifecycle
	mux.Get("/booking/quote/:model_id", anyAuth.ThenFunc(app.bookingHandler.GetQuote))
	mux.Post("/booking", userAuth.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Put("/booking/:id/decision", modelAuth.ThenFunc(app.bookingHandler.DecideBooking))
	mux.Post("/booking/:id/confirm/user", userAuth.ThenFunc(app.bookingHandler.ConfirmByUser))
	mux.Post("/booking/:id/confirm/model", modelAuth.ThenFunc(app.bookingHandler.ConfirmByModel))
	mux.Post("/booking/:id/cancel", userAuth.ThenFunc(app.bookingHandler.CancelBooking))

	// Booking views
	mux.Get("/bookings/model", modelAuth.ThenFunc(app.bookingHandler.GetModelBookings))
	mux.Get("/bookings/history", userAuth.ThenFunc(app.bookingHandler.GetUserHistory))

	// Live view refresh
	mux.Get("/ws", anyAuth.ThenFunc(app.WebSocketHandler))

	return mux
}
