// Package httpapi exposes the offline cache to a local UI over JSON/HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dmitrijs2005/gophcache/internal/client/datacache"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

type API struct {
	cache *datacache.DataCache
	log   logging.Logger
	newID func() string
}

func New(dc *datacache.DataCache, log logging.Logger) *API {
	return &API{cache: dc, log: log, newID: newUploadID}
}

// Handler returns the routes wrapped with CORS for origins.
func (a *API) Handler(origins []string) http.Handler {
	r := mux.NewRouter()
	a.routes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Handler:           h,
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
