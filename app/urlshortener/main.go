package main

import (
	"context"
	"net/http"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpKit "github.com/hos6/urlshortener/kit/http"
	httpMiddlewareKit "github.com/hos6/urlshortener/kit/http/middleware"
	loggerKit "github.com/hos6/urlshortener/kit/logger"
	ormKit "github.com/hos6/urlshortener/kit/orm"
	redisKit "github.com/hos6/urlshortener/kit/redis"
	traceKit "github.com/hos6/urlshortener/kit/trace"
	utilKit "github.com/hos6/urlshortener/kit/util"
	deliveryHTTP "github.com/hos6/urlshortener/url/delivery/http"
	ormRepo "github.com/hos6/urlshortener/url/repository/orm"
	probeRepo "github.com/hos6/urlshortener/url/repository/probe"
	redisRepo "github.com/hos6/urlshortener/url/repository/redis"
	"github.com/hos6/urlshortener/url/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	SYSTEM_NAME  = "system"
	SERVICE_NAME = "url_shortener"
)

func main() {
	var (
		httpAddr            = utilKit.GetEnvString("HTTP_ADDR", ":9091")
		mysqlDSN            = utilKit.GetEnvString("MYSQL_DSN", "root:password@tcp(127.0.0.1:3306)/db?charset=utf8mb4&parseTime=True&loc=Local")
		redisAddr           = utilKit.GetEnvString("REDIS_ADDR", "localhost:6379")
		redisPassword       = utilKit.GetEnvString("REDIS_PASSWORD", "")
		redisDB             = utilKit.GetEnvInt("REDIS_DB", 0)
		cacheTTLSeconds     = utilKit.GetEnvInt64("CACHE_TTL_SECONDS", 86400)
		retentionDays       = utilKit.GetEnvInt64("RETENTION_DAYS", 30)
		reapIntervalSeconds = utilKit.GetEnvInt64("REAP_INTERVAL_SECONDS", 3600)
		probeTimeoutSeconds = utilKit.GetEnvInt64("PROBE_TIMEOUT_SECONDS", 5)
		enableTracer        = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric        = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env                 = utilKit.GetEnvString("ENV", "development")
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger("./go.log", logLevel)
	if err != nil {
		panic(err)
	}
	singletonDB, err := ormKit.CreateDB(ormKit.UseMySQL(mysqlDSN))
	if err != nil {
		panic(err)
	}
	singletonCache, err := redisKit.CreateCache(redisAddr, redisPassword, redisDB)
	if err != nil {
		panic(err)
	}

	rateLimit := utilKit.CreateCacheRateLimit(singletonCache, 3, 10)

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	shortURLRepo := ormRepo.CreateShortURLRepo(singletonDB)
	shortURLCache := redisRepo.CreateShortURLCache(singletonCache, time.Duration(cacheTTLSeconds)*time.Second)
	urlChecker := probeRepo.CreateHTTPURLChecker(time.Duration(probeTimeoutSeconds)*time.Second, logger)

	shortURLUseCase, err := usecase.CreateShortURLUseCase(
		shortURLRepo,
		shortURLCache,
		urlChecker,
		logger,
		usecase.RetentionPeriod(time.Duration(retentionDays)*24*time.Hour),
	)
	if err != nil {
		panic(err)
	}

	customMiddleware := endpoint.Chain(
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
		httpMiddlewareKit.CreateRateLimitMiddleware(rateLimit.Pass),
		httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME),
	)

	g := new(run.Group)
	{
		r := mux.NewRouter()
		options := []httptransport.ServerOption{
			httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
			httptransport.ServerAfter(httpKit.CustomAfterCtx),
			httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
		}
		r.Methods("POST").Path("/api/v1/urls").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLShortenEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLShortenRequest,
				deliveryHTTP.EncodeURLShortenResponse,
				options...,
			))
		r.Methods("GET").Path("/api/v1/urls").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLListEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLListRequests,
				deliveryHTTP.EncodeURLManageResponse,
				options...,
			))
		r.Methods("DELETE").Path("/api/v1/urls/{shortURL}").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLDeleteEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLManageRequests,
				httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(deliveryHTTP.EncodeURLManageResponse),
				options...,
			))
		r.Methods("PUT").Path("/api/v1/urls/{shortURL}/disable").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLDisableEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLManageRequests,
				httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(deliveryHTTP.EncodeURLManageResponse),
				options...,
			))
		r.Methods("PUT").Path("/api/v1/urls/{shortURL}/enable").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLEnableEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLManageRequests,
				httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(deliveryHTTP.EncodeURLManageResponse),
				options...,
			))
		if enableMetric {
			r.Handle("/metrics", promhttp.Handler())
		}
		r.Methods("GET").Path("/{shortURL}").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeURLGetEndpoint(shortURLUseCase)),
				deliveryHTTP.DecodeURLGetRequests,
				deliveryHTTP.EncodeURLGetResponse,
				options...,
			))
		httpSrv := http.Server{
			Addr:    httpAddr,
			Handler: r,
		}
		g.Add(func() error {
			return httpSrv.ListenAndServe()
		}, func(err error) {
			if err != nil {
				logger.Error(err.Error())
			}
			httpSrv.Close()
		})
	}
	{
		reapDone := make(chan struct{})
		g.Add(func() error {
			ticker := time.NewTicker(time.Duration(reapIntervalSeconds) * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					reaped, err := ormRepo.ReapExpired(singletonDB)
					if err != nil {
						logger.Error("reap expired short urls failed", loggerKit.Error(err))
						continue
					}
					if reaped > 0 {
						logger.Info("reaped expired short urls", loggerKit.Int64("count", reaped))
					}
				case <-reapDone:
					return nil
				}
			}
		}, func(err error) {
			close(reapDone)
		})
	}
	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))
	g.Run()
}
