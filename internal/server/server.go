package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

// echoの組み立て（ルート以外）
func New(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDev()
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				c.Logger().Errorj(log.JSON{
					"id": v.RequestID, "method": v.Method, "uri": v.URI,
					"status": v.Status, "latency": v.Latency.String(), "error": errString(v.Error),
				})
				return nil
			}
			c.Logger().Infoj(log.JSON{
				"id": v.RequestID, "method": v.Method, "uri": v.URI,
				"status": v.Status, "latency": v.Latency.String(),
			})
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// アップロード画像の配信
	e.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	return e
}

// SIGINT/SIGTERMまで待ってから止める
func Start(e *echo.Echo, addr string, users repository.Records[model.User], cfg config.Config, handlers ...Routes) error {
	RegisterRoutes(e, cfg, users, handlers...)

	errCh := make(chan error, 1)
	go func() {
		e.Logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-quit:
		e.Logger.Infof("received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

func logLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
