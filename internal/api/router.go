package api

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/AlexZinkM/docuchain-wallet/docs"
	"github.com/AlexZinkM/docuchain-wallet/internal/handler"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

// SetupRouter sets up router with handlers.
// selector is nil unless the provider is the development wallet.
func SetupRouter(s *session.Session, selector handler.AccountSelector, logger *zap.Logger) http.Handler {
	accountHandler := handler.NewAccountHandler(s)
	walletHandler := handler.NewWalletHandler(s, selector)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Account endpoints
	mux.HandleFunc("/account/login", accountHandler.Login)
	mux.HandleFunc("/account/logout", accountHandler.Logout)
	mux.HandleFunc("/account/me", accountHandler.Me)
	mux.HandleFunc("/accounts/check", accountHandler.Check)
	mux.HandleFunc("/accounts/switch", accountHandler.Switch)

	// Wallet endpoints
	mux.HandleFunc("/wallet/session", walletHandler.Session)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/list", walletHandler.List)
	mux.HandleFunc("/wallet/add", walletHandler.Add)
	mux.HandleFunc("/wallet/switch", walletHandler.Switch)
	mux.HandleFunc("/wallet/remove", walletHandler.Remove)
	mux.HandleFunc("/wallet/connect-current", walletHandler.ConnectCurrent)
	mux.HandleFunc("/wallet/qr", walletHandler.QR)
	mux.HandleFunc("/wallet/notifications", walletHandler.Notifications)

	// Document endpoints
	mux.HandleFunc("/documents/mine", walletHandler.MyDocuments)
	mux.HandleFunc("/documents/shared", walletHandler.SharedDocuments)

	// Development wallet
	mux.HandleFunc("/provider/select", walletHandler.SelectProviderAccount)

	if logger == nil {
		return mux
	}
	return logRequests(logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
