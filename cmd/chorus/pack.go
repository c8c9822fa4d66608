package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chorus/archive"
)

var packFrom string

var packCmd = &cobra.Command{
	Use:   "pack <out.pack>",
	Short: "Build a sound pack from a directory, or from placeholder sounds",
	Long: `Build a single-file sound pack.

With --from, every .wav/.ogg/.mp3/.flac file under the directory is stored
under its relative path without extension (UI.img/BtMouseClick.wav becomes
UI.img/BtMouseClick). Without it, placeholder sounds are synthesized for every
effect, the placeholder items and the configured music tracks.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVar(&packFrom, "from", "", "directory of loose sound files")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	p, err := archive.CreatePack(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if packFrom != "" {
		n, err := p.Import(os.DirFS(packFrom))
		if err != nil {
			return err
		}
		fmt.Printf("packed %d sounds from %s into %s\n", n, packFrom, args[0])
		return nil
	}

	mem, err := placeholderMemory()
	if err != nil {
		return err
	}
	n, err := copyArchive(p, mem)
	if err != nil {
		return err
	}
	fmt.Printf("packed %d placeholder sounds at %dHz into %s\n", n, cfg.Audio.SampleRate, args[0])
	return nil
}

func copyArchive(dst *archive.Pack, src archive.Memory) (int, error) {
	keys := src.Keys()
	for _, k := range keys {
		if err := dst.Put(k, src[k]); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}
