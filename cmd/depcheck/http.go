// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/depcheck/checkconfig"
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/xmetrics"
	"github.com/xmidt-org/sallust"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

// contextLogger makes the logger available to handlers through sallust.Get.
func contextLogger(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			requestLogger := logger.With(
				zap.String("method", request.Method),
				zap.String("path", request.URL.Path),
				zap.String("remoteAddr", request.RemoteAddr),
			)

			next.ServeHTTP(response, request.WithContext(sallust.With(request.Context(), requestLogger)))
		})
	}
}

func traced(operation string) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation)
	}
}

type RouterIn struct {
	fx.In

	Logger  *zap.Logger
	Monitor *health.Monitor
	Handler *health.Handler
	Metrics xmetrics.Registry
}

func provideRouter(in RouterIn) *mux.Router {
	var (
		router = mux.NewRouter()
		chain  = alice.New(contextLogger(in.Logger), in.Monitor.RequestTracker)
	)

	router.Handle("/health", chain.Append(traced("health")).Then(in.Handler)).Methods(http.MethodGet)
	router.Handle("/health/live", chain.Append(traced("health.live")).Then(health.LivenessHandler())).Methods(http.MethodGet)
	router.Handle("/health/stats", chain.Append(traced("health.stats")).Then(in.Monitor)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(in.Metrics, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return router
}

type ServerIn struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     checkconfig.Server
	Router     *mux.Router
	Logger     *zap.Logger
}

func startServer(in ServerIn) {
	var (
		logger = in.Logger.With(zap.String("address", in.Config.Address))
		server = &http.Server{
			Addr:              in.Config.Address,
			Handler:           in.Router,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		}
	)

	in.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			l, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}

			logger.Info("serving health endpoints")
			go func() {
				if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
					logger.Error("health server exited", zap.Error(err))
					in.Shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: server.Shutdown,
	})
}
