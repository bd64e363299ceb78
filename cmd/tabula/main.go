package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/ulmenhaus/tabula/api"
	"github.com/ulmenhaus/tabula/cli"
	"github.com/ulmenhaus/tabula/dbms"
	"github.com/ulmenhaus/tabula/osm"
	"github.com/ulmenhaus/tabula/types"
	"github.com/ulmenhaus/tabula/ui"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	err := initTabula()
	if err != nil {
		log.Fatal(err)
	}
}

func initTabula() error {
	f := flag.NewFlagSet("tabula", flag.ExitOnError)
	cfg, err := cli.Parse(f, os.Args[1:])
	if err != nil {
		return err
	}
	switch cfg.Mode {
	case cli.ModeDaemon:
		return initDaemon(cfg)
	case cli.ModeStandalone:
		return initStandalone(cfg)
	default:
		return errors.Errorf("Unknown init mode: %v", cfg.Mode)
	}
}

func initDaemon(cfg *cli.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := dbms.NewDBMS(cfg.ExportDir)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewServer(d, log.Default()),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Printf("server listening at %v, exporting to %v", cfg.Addr, cfg.ExportDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "failed to serve")
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return eg.Wait()
}

func initStandalone(cfg *cli.Config) error {
	mapper, db, err := initDatabase(cfg.Path)
	if err != nil {
		return err
	}
	mv, err := ui.NewMainView(mapper, db, cfg.Table)
	if err != nil {
		return err
	}
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	g.InputEsc = true

	g.SetManagerFunc(mv.Layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// initDatabase loads the database at path, starting an empty one named
// after the file if it does not exist yet
func initDatabase(path string) (*osm.ObjectStoreMapper, *types.Database, error) {
	mapper, err := osm.NewObjectStoreMapper(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := mapper.Load()
	if os.IsNotExist(errors.Cause(err)) {
		name := filepath.Base(path)
		for _, suffix := range []string{osm.SnappySuffix, osm.JSONSuffix} {
			name = strings.TrimSuffix(name, suffix)
		}
		db, err := types.NewDatabase(name)
		return mapper, db, err
	}
	if err != nil {
		return nil, nil, err
	}
	return mapper, db, nil
}
