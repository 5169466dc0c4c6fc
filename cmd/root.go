package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/maypok86/otter"
	"github.com/nerdwave-nick/pbsdex/internal/api"
	dexapi "github.com/nerdwave-nick/pbsdex/internal/api/dex"
	"github.com/nerdwave-nick/pbsdex/internal/api/health"
	"github.com/nerdwave-nick/pbsdex/internal/cache"
	"github.com/nerdwave-nick/pbsdex/internal/dex"
	"github.com/spf13/cobra"
)

type RootOptions struct {
	LogLevel    string
	DataURL     string
	DataDir     string
	Game        string
	DBPath      string
	GCInterval  int
	L2CacheTTL  int
	L1CacheTTL  int
	L1CacheSize int
	Port        int
}

func (o *RootOptions) Validate() error {
	concatErr := func(err error, olderr error) error {
		if olderr != nil {
			return fmt.Errorf("%s\n%w", err.Error(), olderr)
		}
		return err
	}
	var err error
	if o.DataURL == "" && o.DataDir == "" {
		err = concatErr(fmt.Errorf("one of data-url or data-dir must be set"), err)
	}
	if o.Game == "" {
		err = concatErr(fmt.Errorf("game can't be empty"), err)
	}
	if o.DataURL != "" {
		if o.DBPath == "" {
			err = concatErr(fmt.Errorf("db-path can't be empty"), err)
		}
		if o.L2CacheTTL <= 0 {
			err = concatErr(fmt.Errorf("l2-ttl must be greater than 0"), err)
		}
		if o.L1CacheTTL <= 0 {
			err = concatErr(fmt.Errorf("l1-ttl must be greater than 0"), err)
		}
		if o.L1CacheSize <= 0 {
			err = concatErr(fmt.Errorf("l1-size must be greater than 0"), err)
		}
		if o.GCInterval <= 0 {
			err = concatErr(fmt.Errorf("gc-interval must be greater than 0"), err)
		}
	}
	if o.Port <= 0 {
		err = concatErr(fmt.Errorf("port must be greater than 0"), err)
	}
	return err
}

var rootOpts = &RootOptions{}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rootOpts.DataURL, "data-url", "", "Base url of the exported corpus documents. Mutually preferred over data-dir when both are set.")
	rootCmd.Flags().StringVar(&rootOpts.DataDir, "data-dir", "", "Local directory holding the exported corpus documents.")
	rootCmd.Flags().StringVarP(&rootOpts.Game, "game", "g", "", "The game id the corpus documents belong to.")
	rootCmd.Flags().StringVar(&rootOpts.DBPath, "db-path", ".badger", "The path of the badger db folder. Will be created when it doesn't exist.")
	rootCmd.Flags().IntVar(&rootOpts.GCInterval, "gc-interval", 600, "The garbage collection interval of the badger db in seconds. Needs to be greater than 0.")
	rootCmd.Flags().IntVar(&rootOpts.L2CacheTTL, "l2-ttl", 86400, "The ttl of the larger l2 cache in seconds. Needs to be greater than 0.")
	rootCmd.Flags().IntVar(&rootOpts.L1CacheTTL, "l1-ttl", 7200, "The ttl of the smaller l1 cache in seconds. Needs to be greater than 0.")
	rootCmd.Flags().IntVar(&rootOpts.L1CacheSize, "l1-size", 2000, "The size of the smaller l1 cache in number of items. Needs to be greater than 0.")
	rootCmd.Flags().IntVarP(&rootOpts.Port, "port", "p", 8080, "The port to listen on")
	rootCmd.Flags().StringVarP(&rootOpts.LogLevel, "level", "l", "info", "The log level. Valid levels are debug, info, warn, and error.")
}

var rootCmd = &cobra.Command{
	Use:   "pbsdex",
	Short: "pbsdex - a queryable dex built from exported game data",
	Long:  "pbsdex - a queryable dex built from exported game data\n\nNormalizes the exported corpus documents into one dataset and serves lookup, evolution, matchup, encounter and search queries over http",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := rootOpts.Validate(); err != nil {
			return fmt.Errorf("incorrect command usage:\n%w\n", err)
		}
		switch strings.ToLower(rootOpts.LogLevel) {
		case "debug":
			slog.SetLogLoggerLevel(slog.LevelDebug)
		case "info":
			slog.SetLogLoggerLevel(slog.LevelInfo)
		case "warn":
			slog.SetLogLoggerLevel(slog.LevelWarn)
		case "error":
			slog.SetLogLoggerLevel(slog.LevelError)
		default:
			slog.Warn("no/invalid log level provided, setting to info")
			slog.SetLogLoggerLevel(slog.LevelInfo)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		err := rootMain(cmd.Context())
		if err != nil {
			os.Exit(1)
		}
	},
}

func badgerBackgroundGC(ctx context.Context, db *badger.DB, gcInterval time.Duration) {
	go func() {
		for {
			select {
			case <-time.After(gcInterval):
				err := db.RunValueLogGC(0.5)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						slog.Error("running the badger db gc", slog.Any("error", err))
					}
				}
			case <-ctx.Done():
				slog.Debug("badger gc loop shut down")
				return
			}
		}
	}()
}

func stopServerWithTimeout(server *http.Server) error {
	slog.Debug("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutting down http server", slog.Any("error", err))
		return err
	}
	return nil
}

type BadgerLoggerWrapper struct{}

func (*BadgerLoggerWrapper) Errorf(format string, args ...interface{}) {
	slog.Error("badger " + strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (*BadgerLoggerWrapper) Warningf(format string, args ...interface{}) {
	slog.Warn("badger " + strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (*BadgerLoggerWrapper) Infof(format string, args ...interface{}) {
	slog.Info("badger " + strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (*BadgerLoggerWrapper) Debugf(format string, args ...interface{}) {
	slog.Debug("badger " + strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// makeHTTPSource wires the persistent badger layer and the in memory
// otter layer in front of the remote document host. The badger close
// func must be called on shutdown.
func makeHTTPSource(ctx context.Context) (*dex.HTTPSource, func(), error) {
	db, err := badger.Open(badger.DefaultOptions(rootOpts.DBPath).WithLogger(&BadgerLoggerWrapper{}))
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("shutting down db", slog.Any("error", err))
		}
	}

	badgerCache := cache.NewBadgerCache(db, time.Duration(rootOpts.L2CacheTTL)*time.Second)

	oc, err := otter.MustBuilder[string, []byte](rootOpts.L1CacheSize).
		WithTTL(time.Duration(rootOpts.L1CacheTTL) * time.Second).
		Build()
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	otterCache := cache.NewOtterCache(&oc)

	// multi layer cache with preference for the in memory cache
	multiCache := cache.NewMultiLayerCache(
		otterCache,
		&badgerCache,
	)

	badgerBackgroundGC(ctx, db, time.Duration(rootOpts.GCInterval)*time.Second)
	slog.Info("badger db background gc started...")

	return dex.NewHTTPSource(rootOpts.DataURL, multiCache, http.DefaultClient), closeDB, nil
}

func rootMain(parentCtx context.Context) error {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	var src dex.Source
	if rootOpts.DataURL != "" {
		httpSrc, closeDB, err := makeHTTPSource(ctx)
		if err != nil {
			return err
		}
		defer closeDB()
		src = httpSrc
	} else {
		src = dex.NewDirSource(rootOpts.DataDir)
	}

	data, err := dex.Load(ctx, src, rootOpts.Game)
	if err != nil {
		slog.Error("loading dataset", slog.String("game", rootOpts.Game), slog.Any("error", err))
		return err
	}
	mux := http.NewServeMux()

	healthController := health.MakeController()
	dexController := dexapi.MakeController(data)

	router := api.MakeRouter(
		mux,
		[]api.Controller{
			healthController,
			dexController,
		},
	)
	slog.Debug("router created, proceeding to start backend...")

	server := &http.Server{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         fmt.Sprintf(":%d", rootOpts.Port),
		Handler:      router,
	}

	go func() {
		defer cancel()
		slog.Info("server ready to listen...", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return
			}
			slog.Error("error in listen and serve", slog.Any("error", err))
		}
	}()

	<-ctx.Done()
	return stopServerWithTimeout(server)
}
