package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chorus/config"
)

var (
	cfgFile    string
	debug      bool
	mute       bool
	backendArg string
	archiveArg string

	cfg     config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:           "chorus",
	Short:         "Sound effect and music player for the client",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			loaded.Audio.Backend = backendArg
		}
		if cmd.Flags().Changed("archive") {
			loaded.Archive.Path = archiveArg
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logFile = setupLogging(debug, cfg.Log.File, cfg.Log.Level)
		log.Debugf("Config loaded: backend=%s archive=%q", cfg.Audio.Backend, cfg.Archive.Path)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default ./chorus.yaml)")
	f.BoolVar(&debug, "debug", false, "write a debug log")
	f.BoolVar(&mute, "mute", false, "run with audio disabled")
	f.StringVar(&backendArg, "backend", "", "audio backend: auto, speaker, pipe, none")
	f.StringVar(&archiveArg, "archive", "", "sound pack file or directory; empty uses placeholders")
}
