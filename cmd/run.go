package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/app"
	"github.com/ankibridge/ankibridge-service/pkg/fileurl"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	boot := bootstrapLogger()

	if err := ensureConfigFile(cfgFile, boot); err != nil {
		return err
	}
	cfg, err := app.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	srv, err := newServer(cfg, boot)
	if err != nil {
		return err
	}
	return srv.Run()
}

// ensureConfigFile writes the embedded config template on first start,
// substituting a freshly generated API key.
func ensureConfigFile(path string, lg *zap.Logger) error {
	if fileurl.IsExist(path) {
		return nil
	}
	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	content := bytes.ReplaceAll(defaultConfig,
		[]byte("api-key: \"\""),
		[]byte("api-key: \""+util.GetRandomString(32)+"\""),
	)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return errors.Wrap(err, "write default config")
	}
	lg.Info("default config created", zap.String("path", path))
	return nil
}

// watchConfig reloads the file on change and hands the new config to
// onReload. Invalid files are logged and skipped.
func watchConfig(path string, lg *zap.Logger, onReload func(*app.Config)) (*watcher.Watcher, error) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := w.Add(abs); err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case <-w.Event:
				cfg, err := app.LoadConfig(path)
				if err != nil {
					lg.Warn("config reload skipped", zap.Error(err))
					continue
				}
				lg.Info("config reloaded", zap.String("path", path))
				onReload(cfg)
			case err, ok := <-w.Error:
				if !ok {
					return
				}
				lg.Warn("config watcher error", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	go func() {
		if err := w.Start(time.Second); err != nil {
			lg.Warn("config watcher stopped", zap.Error(err))
		}
	}()
	return w, nil
}
