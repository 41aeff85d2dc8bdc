// Package pipeline wires the full music-generation workflow: corpus
// extraction, vocabulary fitting, model training, greedy generation, and
// MIDI/audio output.
//
// The three entry points mirror the command-line subcommands:
//
//	Train    MIDI corpus (or synthetic genre data) -> notes.json + checkpoint
//	Generate notes.json + checkpoint -> generated MIDI file
//	Render   MIDI file -> MP3 via an external synthesizer
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/corpus"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/dataset"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/generate"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/genre"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/midi"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/model"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/optim"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/score"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/serialization"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/synth"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/train"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/vocab"
)

// Config holds the knobs shared by the pipeline stages. Zero values fall
// back to the defaults of the underlying packages.
type Config struct {
	MIDIDir        string // training corpus directory; empty selects synthetic data
	Genre          string // genre for synthetic data (default: "jazz")
	GenreConfig    string // optional YAML genre configuration
	CorpusSize     int    // synthetic corpus token count (default: 1000)
	NotesPath      string // token stream artifact (default: "notes.json")
	CheckpointPath string // model weights artifact (default: "weights.best.muse")

	ContextLen int // model context window (default: 100)
	EmbedDim   int // embedding size (default: 64)
	Hidden     int // LSTM hidden size (default: 128)
	Epochs     int // training epochs (default: 200)
	BatchSize  int // training batch size (default: 32)
	LR         float32
	Steps      int // tokens to generate (default: 500)
	TempoBPM   int // output MIDI tempo (default: 120)
	Seed       int64

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Genre == "" {
		c.Genre = "jazz"
	}
	if c.CorpusSize == 0 {
		c.CorpusSize = genre.DefaultCorpusSize
	}
	if c.NotesPath == "" {
		c.NotesPath = corpus.DefaultNotesFile
	}
	if c.CheckpointPath == "" {
		c.CheckpointPath = "weights.best.muse"
	}
	if c.ContextLen == 0 {
		c.ContextLen = dataset.ContextLen
	}
	if c.EmbedDim == 0 {
		c.EmbedDim = model.DefaultEmbedDim
	}
	if c.Hidden == 0 {
		c.Hidden = model.DefaultHidden
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Train extracts the training tokens, fits the vocabulary, and runs the
// full training loop, leaving the best checkpoint and notes.json behind.
func Train(ctx context.Context, config Config) error {
	config = config.withDefaults()
	log := config.Logger

	tokens, err := loadTrainingTokens(config)
	if err != nil {
		return err
	}
	if err := corpus.SaveTokens(config.NotesPath, tokens); err != nil {
		return err
	}

	v := vocab.Fit(tokens)
	log.Info("corpus ready", "tokens", len(tokens), "vocab_size", v.Size())

	ids, err := v.EncodeAll(tokens)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	windows := dataset.MakeWindows(ids, config.ContextLen)
	if len(windows) == 0 {
		return fmt.Errorf("corpus of %d tokens is too short for context length %d", len(tokens), config.ContextLen)
	}

	m, err := model.New(model.Config{
		ContextLen: config.ContextLen,
		VocabSize:  v.Size(),
		EmbedDim:   config.EmbedDim,
		Hidden:     config.Hidden,
		Seed:       config.Seed,
	})
	if err != nil {
		return err
	}

	opt := optim.NewAdam(m.Parameters(), optim.AdamConfig{LR: config.LR})

	trainer := train.New(m, opt, train.Config{
		Epochs:         config.Epochs,
		BatchSize:      config.BatchSize,
		CheckpointPath: config.CheckpointPath,
		Seed:           config.Seed,
		Meta: serialization.CheckpointMeta{
			ContextLen: config.ContextLen,
			VocabSize:  v.Size(),
			EmbedDim:   config.EmbedDim,
			Hidden:     config.Hidden,
		},
		Logger: log,
	})
	return trainer.Run(ctx, windows)
}

// loadTrainingTokens reads the MIDI corpus, or synthesizes one from the
// configured genre when no corpus directory is set.
func loadTrainingTokens(config Config) ([]string, error) {
	if config.MIDIDir != "" {
		tokens, err := midi.ReadDir(config.MIDIDir)
		if err != nil {
			return nil, fmt.Errorf("read MIDI corpus: %w", err)
		}
		return tokens, nil
	}

	table, err := genre.LoadConfig(config.GenreConfig)
	if err != nil {
		return nil, err
	}
	c, err := table.Lookup(config.Genre)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(config.Seed))
	return genre.SyntheticTokens(c, config.CorpusSize, rng), nil
}

// Generate restores the best checkpoint, generates a fresh token sequence
// from a random seed window, and writes it to outputMIDI.
func Generate(ctx context.Context, config Config, outputMIDI string) error {
	requestedContextLen := config.ContextLen
	config = config.withDefaults()
	log := config.Logger

	tokens, err := corpus.LoadTokens(config.NotesPath)
	if err != nil {
		return err
	}
	v := vocab.Fit(tokens)

	state, header, err := loadCheckpoint(config.CheckpointPath)
	if err != nil {
		return err
	}

	meta := header.Checkpoint
	if meta == nil {
		return fmt.Errorf("checkpoint %s carries no training metadata", config.CheckpointPath)
	}
	if meta.VocabSize != v.Size() {
		return fmt.Errorf("checkpoint was trained on %d tokens but the corpus has %d: %w",
			meta.VocabSize, v.Size(), model.ErrShapeMismatch)
	}
	// The checkpoint fixes the context length; a caller asking for a
	// different one cannot be served by the restored weights.
	if requestedContextLen != 0 && requestedContextLen != meta.ContextLen {
		return fmt.Errorf("checkpoint was trained with context length %d but %d was requested: %w",
			meta.ContextLen, requestedContextLen, model.ErrShapeMismatch)
	}

	m, err := model.New(model.Config{
		ContextLen: meta.ContextLen,
		VocabSize:  meta.VocabSize,
		EmbedDim:   meta.EmbedDim,
		Hidden:     meta.Hidden,
		Seed:       config.Seed,
	})
	if err != nil {
		return err
	}
	if err := m.LoadStateDict(state); err != nil {
		return err
	}
	log.Info("checkpoint restored",
		"path", config.CheckpointPath,
		"epoch", meta.Epoch,
		"loss", meta.Loss,
		"vocab_size", meta.VocabSize)

	ids, err := v.EncodeAll(tokens)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	rng := rand.New(rand.NewSource(config.Seed))
	seed, err := generate.SeedWindow(ids, meta.ContextLen, rng)
	if err != nil {
		return err
	}

	gen := generate.New(m, generate.Config{Steps: config.Steps, ContextLen: meta.ContextLen})
	outIDs, err := gen.Run(ctx, seed)
	if err != nil {
		return err
	}

	outTokens, err := v.DecodeAll(outIDs)
	if err != nil {
		return err
	}
	events, err := score.Decode(outTokens)
	if err != nil {
		return err
	}

	tempo := config.TempoBPM
	if tempo == 0 {
		tempo = midi.DefaultTempoBPM
		if table, err := genre.LoadConfig(config.GenreConfig); err == nil {
			if c, err := table.Lookup(config.Genre); err == nil {
				tempo = c.Tempo(rng)
			}
		}
	}

	if err := midi.WriteFile(outputMIDI, events, tempo); err != nil {
		return err
	}
	log.Info("generation complete", "output", outputMIDI, "tokens", len(outTokens), "tempo_bpm", tempo)
	return nil
}

// loadCheckpoint reads a .muse file, mapping a missing file to
// corpus.ErrMissingArtifact.
func loadCheckpoint(path string) (map[string]*tensor.RawTensor, serialization.Header, error) {
	state, header, err := serialization.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, serialization.Header{}, fmt.Errorf("checkpoint %s: %w", path, corpus.ErrMissingArtifact)
		}
		return nil, serialization.Header{}, err
	}
	return state, header, nil
}

// Render converts a generated MIDI file to MP3.
func Render(ctx context.Context, config Config, midiPath, mp3Path string) error {
	config = config.withDefaults()

	r := synth.NewRenderer()
	r.Logger = config.Logger
	return r.RenderMP3(ctx, midiPath, mp3Path)
}
