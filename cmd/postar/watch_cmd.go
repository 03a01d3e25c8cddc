package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xlordnoro/postar/internal/config"
	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/scanner"
	"github.com/xlordnoro/postar/internal/watcher"
)

// rescanHandler re-classifies a folder whenever media files land in it,
// so the operator can see labels before generating the post.
type rescanHandler struct {
	scan *scanner.Scanner
	log  *logging.Logger
}

func (h *rescanHandler) HandleFileEvent(event watcher.FileEvent) error {
	if event.Type == watcher.EventDelete {
		return nil
	}
	folder := filepath.Dir(event.Path)
	result := h.scan.ScanFolder(folder)
	for _, rec := range result.Batch.Records {
		h.log.Info("watch", "classified",
			logging.F("file", rec.Filename),
			logging.F("category", rec.Category),
			logging.F("label", rec.Label))
	}
	for _, err := range result.Errors {
		h.log.Error("watch", "scan error", err)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "watch <folder>...",
		Short: "Watch staging folders and classify new media files as they arrive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()

			handler := &rescanHandler{scan: scanner.New(log), log: log}
			w, err := watcher.New(handler, log, watcher.WithRecursive(recursive))
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Watch(args); err != nil {
				return err
			}

			fmt.Println(successStyle.Render("Watching for new files. Press Ctrl+C to stop."))
			return w.Start()
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "watch subfolders too")
	return cmd
}
