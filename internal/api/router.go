package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/AlexZinkM/qsafe-wallet/docs"
	"github.com/AlexZinkM/qsafe-wallet/internal/handler"
)

// SetupRouter sets up router with handlers.
// gatherer backs /metrics; it is usually the registry the metrics were created on.
func SetupRouter(walletHandler *handler.WalletHandler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Wallet lifecycle
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/restore", walletHandler.Restore)
	mux.HandleFunc("/wallet/unlock", walletHandler.Unlock)
	mux.HandleFunc("/wallet/lock", walletHandler.Lock)
	mux.HandleFunc("/wallet/delete", walletHandler.Delete)
	mux.HandleFunc("/wallet/password", walletHandler.ChangePassword)
	mux.HandleFunc("/wallet/status", walletHandler.Status)
	mux.HandleFunc("/wallet/sign", walletHandler.Sign)
	mux.HandleFunc("/wallet/address/qr", walletHandler.AddressQR)

	// Seed phrase backup
	mux.HandleFunc("/wallet/seed", walletHandler.SeedPhrase)
	mux.HandleFunc("/wallet/seed/show", walletHandler.ShowSeed)
	mux.HandleFunc("/wallet/seed/hide", walletHandler.HideSeed)
	mux.HandleFunc("/wallet/seed/confirm", walletHandler.ConfirmSeed)
	mux.HandleFunc("/wallet/seed/verify", walletHandler.VerifySeedWord)

	return mux
}
