package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xlordnoro/postar/internal/config"
	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/metadata"
	"github.com/xlordnoro/postar/internal/novelty"
	"github.com/xlordnoro/postar/internal/probe"
	"github.com/xlordnoro/postar/internal/render"
	"github.com/xlordnoro/postar/internal/scanner"
)

func newPostCmd() *cobra.Command {
	var (
		paths1080   []string
		paths720    []string
		paths       []string
		malIDs      []string
		spanColors  []string
		airingImgs  []string
		donateImgs  []string
		bdImages    []string
		bdToggle    bool
		seasonal    bool
		crcColumn   bool
		output      string
		showCRCWork bool
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Generate a release post from show folders",
		Long: `Generate release-post markup for one or more show folders.

BD releases pass paired --p1080/--p720 folders; non-BD releases pass
--paths. Episode labels for files already announced in a previous run
are rendered without the New badge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(paths1080) == 0 && len(paths) == 0 {
				return fmt.Errorf("at least one of --p1080 or --paths is required")
			}
			if len(malIDs) == 0 {
				return fmt.Errorf("--mal-id is required")
			}
			if len(spanColors) == 0 {
				return fmt.Errorf("--span-color is required")
			}
			if len(airingImgs) == 0 {
				return fmt.Errorf("--airing-image is required")
			}
			if len(donateImgs) == 0 {
				return fmt.Errorf("--donation-image is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()

			statePath, err := cfg.StatePath()
			if err != nil {
				return err
			}
			tracker := novelty.Open(statePath, log)

			scan := scanner.New(log)
			scan.ShowProgress = showCRCWork

			req := render.Request{
				MALIDs:         malIDs,
				Colors:         spanColors,
				AiringImages:   airingImgs,
				DonationImages: donateImgs,
				BDImages:       bdImages,
				BDToggle:       bdToggle,
				Grouped:        seasonal,
				CRCColumn:      crcColumn,
			}

			for i, p := range paths1080 {
				season := render.BDSeason{Folder1080: scanAndReport(scan, p, log)}
				if i < len(paths720) {
					season.Folder720 = scanAndReport(scan, paths720[i], log)
				} else {
					season.Folder720 = &scanner.FolderBatch{}
				}
				req.BDSeasons = append(req.BDSeasons, season)
			}
			for _, p := range paths {
				req.NonBD = append(req.NonBD, scanAndReport(scan, p, log))
			}

			builder := render.NewBuilder(cfg, tracker, metadata.NewClient(log), probe.New(log), log)
			markup, defaultName, err := builder.Build(req)
			if err != nil {
				return err
			}

			outFile := output
			if outFile == "" {
				outFile = defaultName
			}
			if err := os.WriteFile(outFile, []byte(markup), 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Printf("%s %s\n", successStyle.Render("Post generated:"), outFile)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&paths1080, "p1080", nil, "BD 1080p folders, one per season")
	cmd.Flags().StringSliceVar(&paths720, "p720", nil, "BD 720p folders, paired with --p1080")
	cmd.Flags().StringSliceVarP(&paths, "paths", "p", nil, "non-BD show folders")
	cmd.Flags().StringSliceVarP(&malIDs, "mal-id", "m", nil, "MAL id(s), one per show")
	cmd.Flags().StringSliceVarP(&spanColors, "span-color", "c", nil, "heading colors")
	cmd.Flags().BoolVarP(&bdToggle, "bd", "b", false, "render the BD 1080p/720p toggle")
	cmd.Flags().StringSliceVar(&bdImages, "bd-image", nil, "BD toggle images in (1080p, 720p) pairs per season")
	cmd.Flags().StringSliceVarP(&airingImgs, "airing-image", "a", nil, "cover image URL(s)")
	cmd.Flags().BoolVarP(&seasonal, "seasonal", "s", false, "group episodes by series (airing-style)")
	cmd.Flags().StringSliceVarP(&donateImgs, "donation-image", "d", nil, "donation banner URL(s)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output filename (default derived from the folder name)")
	cmd.Flags().BoolVar(&crcColumn, "crc", false, "include the CRC32 column in episode tables")
	cmd.Flags().BoolVar(&showCRCWork, "progress", false, "show a progress bar while hashing files without an in-name CRC")

	return cmd
}

// scanAndReport scans one folder and prints per-file failures without
// aborting the run; a missing folder is a normal empty tier.
func scanAndReport(scan *scanner.Scanner, path string, log *logging.Logger) *scanner.FolderBatch {
	result := scan.ScanFolder(path)
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s %v\n", warnStyle.Render("warning:"), err)
	}
	log.Info("scanner", "folder scanned",
		logging.F("folder", result.Batch.Basename),
		logging.F("files", result.FilesScanned),
		logging.F("errors", len(result.Errors)),
		logging.F("duration", result.Duration))
	return result.Batch
}
