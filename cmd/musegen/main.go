// Command musegen trains a note-sequence model on a MIDI corpus and
// generates new music from it.
//
// Usage:
//
//	musegen train    [flags]   extract tokens and train the model
//	musegen generate [flags]   generate a MIDI file from the best checkpoint
//	musegen render   [flags]   render a MIDI file to MP3
//	musegen version            print the version
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/pipeline"
)

const version = "0.2.0"

func initLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <train|generate|render|version> [flags]\n", os.Args[0])
	os.Exit(2)
}

// commonFlags registers the flags shared by train and generate.
func commonFlags(fs *flag.FlagSet, config *pipeline.Config) *bool {
	fs.StringVar(&config.NotesPath, "notes", "notes.json", "token stream artifact path")
	fs.StringVar(&config.CheckpointPath, "checkpoint", "weights.best.muse", "model checkpoint path")
	fs.StringVar(&config.Genre, "genre", "jazz", "genre for synthetic data and tempo selection")
	fs.StringVar(&config.GenreConfig, "genre-config", "", "optional YAML genre configuration")
	fs.Int64Var(&config.Seed, "seed", 0, "random seed")
	return fs.Bool("debug", false, "enable debug logging")
}

func runTrain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var config pipeline.Config
	debug := commonFlags(fs, &config)
	fs.StringVar(&config.MIDIDir, "midi-dir", "", "directory of .mid training files (empty: synthetic genre corpus)")
	fs.IntVar(&config.CorpusSize, "corpus-size", 1000, "synthetic corpus token count")
	fs.IntVar(&config.ContextLen, "context", 100, "context window length")
	fs.IntVar(&config.Epochs, "epochs", 200, "training epochs")
	fs.IntVar(&config.BatchSize, "batch-size", 32, "mini-batch size")
	lr := fs.Float64("lr", 0.001, "learning rate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.LR = float32(*lr)
	config.Logger = initLogger(*debug)
	return pipeline.Train(ctx, config)
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var config pipeline.Config
	debug := commonFlags(fs, &config)
	fs.IntVar(&config.Steps, "steps", 500, "tokens to generate")
	fs.IntVar(&config.TempoBPM, "tempo", 0, "output tempo in BPM (0: pick from the genre)")
	output := fs.String("output", "output.mid", "output MIDI path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.Logger = initLogger(*debug)
	return pipeline.Generate(ctx, config, *output)
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var config pipeline.Config
	debug := fs.Bool("debug", false, "enable debug logging")
	input := fs.String("input", "output.mid", "input MIDI path")
	output := fs.String("output", "output.mp3", "output MP3 path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.Logger = initLogger(*debug)
	return pipeline.Render(ctx, config, *input, *output)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(ctx, os.Args[2:])
	case "generate":
		err = runGenerate(ctx, os.Args[2:])
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
	}

	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
