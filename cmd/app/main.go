package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/famcal/custody-schedule-engine/internal/adapters/in/http"
	"github.com/famcal/custody-schedule-engine/internal/adapters/in/rabbitmq"
	"github.com/famcal/custody-schedule-engine/internal/adapters/out/cache"
	"github.com/famcal/custody-schedule-engine/internal/adapters/out/idgen"
	"github.com/famcal/custody-schedule-engine/internal/adapters/out/logger"
	"github.com/famcal/custody-schedule-engine/internal/adapters/out/memstore"
	"github.com/famcal/custody-schedule-engine/internal/config"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
	"github.com/famcal/custody-schedule-engine/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация хранилищ
	ruleStore := memstore.NewRuleStoreAdapter(mainLogger.WithModule("RuleStoreAdapter"))
	intervalStore := memstore.NewIntervalStoreAdapter(mainLogger.WithModule("IntervalStoreAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		calendarCache, err := cache.NewCalendarCacheAdapter(cfg, mainLogger)
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = calendarCache
	}

	// Инициализация сервиса
	custodyService := services.NewCustodyService(
		ruleStore,
		intervalStore,
		cacheAdapter,
		idgen.NewUUIDGenerator(),
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewCustodyController(
		custodyService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewPropagationListener(
			custodyService,
			cfg,
			mainLogger,
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"rabbitmq": map[string]interface{}{
					"enabled":          cfg.RabbitMQ.Enabled,
					"propagationQueue": cfg.RabbitMQ.PropagationQueue,
					"cacheQueue":       cfg.RabbitMQ.CacheQueue,
				},
				"cache": map[string]interface{}{
					"enabled":        cfg.Cache.Enabled,
					"calendars_size": cfg.Cache.CalendarsSize,
				},
			},
		})
	}
}
