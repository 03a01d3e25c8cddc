package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xlordnoro/postar/internal/config"
	"github.com/xlordnoro/postar/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage postar settings",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		showsBase    string
		torrentsBase string
		encoderName  string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ConfigExists() && !force {
				path, _ := paths.ConfigPath()
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			cfg.ShowsBase = showsBase
			cfg.TorrentsBase = torrentsBase
			cfg.EncoderName = encoderName

			if err := cfg.Save(); err != nil {
				return err
			}

			path, _ := paths.ConfigPath()
			fmt.Printf("%s %s\n", successStyle.Render("Settings written:"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&showsBase, "shows-base", "", "base URL episode files are served from")
	cmd.Flags().StringVar(&torrentsBase, "torrents-base", "", "base URL batch torrents are served from")
	cmd.Flags().StringVar(&encoderName, "encoder-name", "", "encoder name for encoding tables")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(cfg.ToTOML())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the postar version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("postar %s\n", version)
		},
	}
}
