// Command frontier runs the world simulation and serves the renderer
// bridge. `frontier new` generates a fresh world; `frontier load` resumes
// a saved one.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/bootstrap"
	"frontier.sim/internal/params"
	"frontier.sim/internal/persistence/indexdb"
	steplog "frontier.sim/internal/persistence/log"
	"frontier.sim/internal/persistence/snapshot"
	"frontier.sim/internal/protocol"
	"frontier.sim/internal/system"
	"frontier.sim/internal/transport/ws"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "frontier",
	})

	root := &cobra.Command{
		Use:           "frontier",
		Short:         "tile world simulation with a websocket renderer bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCmd(logger), loadCmd(logger), savesCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Fatal("exiting", "error", err)
	}
}

type serveFlags struct {
	addr    string
	save    string
	threads int
}

func addServeFlags(cmd *cobra.Command, flags *serveFlags) {
	cmd.Flags().StringVar(&flags.addr, "addr", ":8077", "http listen address")
	cmd.Flags().StringVar(&flags.save, "path", "./saves/default", "save base path")
	cmd.Flags().IntVar(&flags.threads, "threads", 0, "worker threads (0 = all cores)")
}

func newCmd(logger *log.Logger) *cobra.Command {
	var (
		flags     serveFlags
		power     int
		seed      int64
		revealAll bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "generate a fresh world and run it",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyThreads(flags.threads)
			p := params.New(power, seed, revealAll)
			artifacts, err := bootstrap.New(p)
			if err != nil {
				return fmt.Errorf("generate world: %w", err)
			}
			return serve(logger, flags, p, artifacts, artist.NewLabels())
		},
	}
	addServeFlags(cmd, &flags)
	cmd.Flags().IntVar(&power, "power", 8, "world size exponent (side = 2^power + 1)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "world seed")
	cmd.Flags().BoolVar(&revealAll, "reveal-all", false, "disable line of sight and reveal the whole map")
	return cmd
}

func loadCmd(logger *log.Logger) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "load",
		Short: "resume a saved world",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyThreads(flags.threads)
			artifacts, p, labels, err := bootstrap.Load(snapshot.Paths{Base: flags.save})
			if err != nil {
				return fmt.Errorf("load %s: %w", flags.save, err)
			}
			return serve(logger, flags, p, artifacts, labels)
		},
	}
	addServeFlags(cmd, &flags)
	return cmd
}

func savesCmd(logger *log.Logger) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "list indexed save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := indexdb.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer index.Close()
			rows, err := index.ListSaves()
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Printf("%-16s micros=%-14d seed=%-8d power=%-2d settlements=%-4d saved=%s\n",
					row.Name, row.Micros, row.Seed, row.Power, row.Settlements, row.SavedAt)
			}
			if len(rows) == 0 {
				logger.Info("no saves indexed", "db", dbPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "./saves/index.db", "save index database")
	return cmd
}

func applyThreads(threads int) {
	if threads > 0 {
		runtime.GOMAXPROCS(threads)
	}
}

func serve(logger *log.Logger, flags serveFlags, p params.Params, artifacts *bootstrap.Artifacts, labels *artist.Labels) error {
	paths := snapshot.Paths{Base: flags.save}
	if err := os.MkdirAll(filepath.Dir(paths.Base), 0o755); err != nil {
		return err
	}

	index, err := indexdb.OpenSQLite(filepath.Join(filepath.Dir(paths.Base), "index.db"))
	if err != nil {
		return fmt.Errorf("open save index: %w", err)
	}

	world := artifacts.Game.World
	events := make(chan protocol.InputEvent, 256)
	server := ws.NewServer(protocol.WorldParams{
		Width:     world.Width(),
		Height:    world.Height(),
		SeaLevel:  world.SeaLevel(),
		MaxHeight: world.MaxHeight(),
		Seed:      p.Seed,
		Power:     p.Power,
	}, events, logger.WithPrefix("ws"))

	controller := system.New(system.State{
		Sim:          artifacts.Simulation,
		Avatars:      artifacts.Avatars,
		Controls:     artifacts.Controls,
		Labels:       labels,
		WorldArtist:  artist.NewWorldArtist(p.WorldColoring, p.SlabSize),
		TownArtist:   artist.NewTownArtist(p.TownArtist),
		AvatarArtist: artist.NewAvatarArtist(),
		LabelArtist:  artist.NewLabelArtist(),
		Out:          server,
		StepLog:      steplog.NewStepLogger(filepath.Dir(paths.Base)),
		Index:        index,
		Params:       p,
		Paths:        paths,
		Log:          logger.WithPrefix("system"),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", server.Handler())
	httpServer := &http.Server{Addr: flags.addr, Handler: mux}
	go func() {
		logger.Info("listening", "addr", flags.addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", "error", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("signal received, shutting down", "signal", sig)
		events <- protocol.InputEvent{Kind: protocol.EventShutdown}
	}()

	controller.Start()
	controller.Run(events)

	_ = httpServer.Close()
	return nil
}
