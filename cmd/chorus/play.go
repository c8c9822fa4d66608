package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chorus/audio"
)

var (
	playOnce     bool
	playDuration time.Duration
	playVolume   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an effect, item sound or music track",
}

var playEffectCmd = &cobra.Command{
	Use:   "effect <name>",
	Short: "Play a preloaded effect by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, ok := audio.ParseEffectName(args[0])
		if !ok {
			return fmt.Errorf("unknown effect %q; see chorus effects", args[0])
		}
		return withSystem(func(ctx context.Context, sys *audio.System) error {
			sys.PlayEffect(name)
			return drain(ctx, sys)
		})
	},
}

var playItemCmd = &cobra.Command{
	Use:   "item <id>",
	Short: "Play an item's use sound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("item id %q: %w", args[0], err)
		}
		return withSystem(func(ctx context.Context, sys *audio.System) error {
			if !sys.PlayItem(int32(id)) && sys.Enabled() {
				return fmt.Errorf("item %d: %w", id, audio.ErrAssetNotFound)
			}
			return drain(ctx, sys)
		})
	},
}

var playSoundCmd = &cobra.Command{
	Use:   "sound <key>",
	Short: "Play the sound stored under an archive key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSystem(func(ctx context.Context, sys *audio.System) error {
			if !sys.PlaySound(args[0]) && sys.Enabled() {
				return fmt.Errorf("%s: %w", args[0], audio.ErrAssetNotFound)
			}
			return drain(ctx, sys)
		})
	},
}

var playMusicCmd = &cobra.Command{
	Use:   "music <path>",
	Short: "Play a music track, looping unless --once is set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSystem(func(ctx context.Context, sys *audio.System) error {
			var err error
			if playOnce {
				err = sys.PlayMusicOnce(args[0])
			} else {
				err = sys.PlayMusic(args[0])
			}
			if err != nil {
				return err
			}

			if playDuration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, playDuration)
				defer cancel()
			}
			tick(ctx, sys, func() bool {
				return sys.MusicState() == audio.MusicStopped
			})
			return nil
		})
	},
}

func init() {
	playCmd.PersistentFlags().IntVar(&playVolume, "volume", -1, "channel volume 0-255 (default from config)")
	playMusicCmd.Flags().BoolVar(&playOnce, "once", false, "play the track a single time")
	playMusicCmd.Flags().DurationVar(&playDuration, "duration", 0, "stop after this long (0 = until interrupted or finished)")

	playCmd.AddCommand(playEffectCmd, playItemCmd, playSoundCmd, playMusicCmd)
	rootCmd.AddCommand(playCmd)
}

// withSystem runs fn against a started audio system, stopping on interrupt
func withSystem(fn func(ctx context.Context, sys *audio.System) error) error {
	s, err := startSession()
	if err != nil {
		return err
	}
	defer s.Close()

	sys := s.System()
	if playVolume >= 0 {
		sys.SetEffectVolume(playVolume)
		sys.SetMusicVolume(playVolume)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return fn(ctx, sys)
}

// drain keeps the process alive long enough for a one-shot effect to play out
func drain(ctx context.Context, sys *audio.System) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	tick(ctx, sys, func() bool { return false })
	return nil
}
