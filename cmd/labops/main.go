package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/caeptox/labops/internal/api"
	"github.com/caeptox/labops/internal/pkg/constants"
	"github.com/caeptox/labops/internal/pkg/logger"
	"github.com/caeptox/labops/internal/pkg/store"
	"github.com/caeptox/labops/internal/pkg/store/xpgx"
	"github.com/caeptox/labops/internal/service/dashboard"
	"github.com/caeptox/labops/internal/service/loader"
)

func initConfig() {
	viper.SetEnvPrefix("labops")
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperKeyListenAddr, constants.DefaultListenAddr)
	viper.SetDefault(constants.ViperKeyTimezone, constants.DefaultTimezone)
	viper.SetDefault(constants.ViperKeyExcludedLabID, constants.DefaultExcludedLabID)
	viper.SetDefault(constants.ViperKeyDefaultYear, constants.DefaultYear)
	viper.SetDefault(constants.ViperKeyActivityWindowDays, constants.DefaultActivityWindowDays)
	viper.SetDefault(constants.ViperKeyExcludeDisabled, constants.DefaultExcludeDisabled)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // config file is optional, env covers everything
}

func main() {
	ctx := context.Background()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger.Init(zapLogger)

	initConfig()

	loc, err := time.LoadLocation(viper.GetString(constants.ViperKeyTimezone))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	var st store.Store
	if dsn := viper.GetString(constants.ViperKeyDatabaseDSN); dsn != "" {
		pool, err := xpgx.NewPool(ctx, dsn)
		if err != nil {
			logger.Warnf(ctx, "postgres unavailable, csv sources only: %s", err.Error())
		} else {
			defer pool.Close()
			st = store.NewStore(pool)
		}
	}

	ld := loader.NewService(st, loader.Config{
		DataDir:       viper.GetString(constants.ViperKeyDataDir),
		RemoteBaseURL: viper.GetString(constants.ViperKeyRemoteExportURL),
		ExcludedLabID: viper.GetString(constants.ViperKeyExcludedLabID),
		Location:      loc,
	})

	dashboardService := dashboard.NewService(
		ld,
		viper.GetInt(constants.ViperKeyDefaultYear),
		viper.GetInt(constants.ViperKeyActivityWindowDays),
		viper.GetBool(constants.ViperKeyExcludeDisabled),
	)
	if err := dashboardService.Load(ctx); err != nil {
		logger.Fatal(ctx, err)
	}

	apiService, err := api.NewAPIService(dashboardService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go apiService.Serve(viper.GetString(constants.ViperKeyListenAddr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := apiService.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}
