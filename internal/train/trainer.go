// Package train drives the optimization loop and best-loss checkpointing.
//
// The trainer walks a fixed number of epochs over shuffled mini-batches,
// tracks the lowest epoch loss seen so far, and writes a checkpoint only
// when an epoch improves on it. Checkpoint writes are atomic, so an
// interrupted run always leaves the previous best intact.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/dataset"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/optim"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/serialization"
	"github.com/Hamza35779/Music-Generation-with-Al--CodeAlpha/internal/tensor"
)

// Default training hyperparameters.
const (
	DefaultEpochs    = 200
	DefaultBatchSize = 32
)

// State is the trainer lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateConverged
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Trainable is the model surface the trainer needs: one gradient step per
// mini-batch and a weight snapshot for checkpointing.
type Trainable interface {
	FitStep(batch []dataset.Window) (float64, error)
	StateDict() map[string]*tensor.RawTensor
}

// Config holds trainer configuration.
type Config struct {
	Epochs         int    // number of passes over the windows (default: 200)
	BatchSize      int    // windows per gradient step (default: 32)
	CheckpointPath string // where the best checkpoint is written; empty disables checkpointing
	Seed           int64  // batch shuffling seed

	// Meta is the checkpoint metadata template. Epoch and Loss are filled
	// in at save time; the remaining fields describe the model
	// configuration so loads can reject incompatible checkpoints.
	Meta serialization.CheckpointMeta

	Logger *slog.Logger // defaults to slog.Default()
}

// Trainer runs the training loop over a window dataset.
type Trainer struct {
	model  Trainable
	opt    optim.Optimizer
	config Config
	log    *slog.Logger

	state     State
	bestLoss  float64
	bestEpoch int
	hasBest   bool
}

// New creates a trainer in the idle state.
func New(model Trainable, opt optim.Optimizer, config Config) *Trainer {
	if config.Epochs == 0 {
		config.Epochs = DefaultEpochs
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultBatchSize
	}
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Trainer{
		model:  model,
		opt:    opt,
		config: config,
		log:    log,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (t *Trainer) State() State {
	return t.state
}

// Best returns the lowest epoch loss observed and the epoch that produced
// it. The second return is false until at least one epoch completes.
func (t *Trainer) Best() (loss float64, epoch int, ok bool) {
	return t.bestLoss, t.bestEpoch, t.hasBest
}

// Run executes the full training loop and transitions the trainer to
// Converged or Failed. A trainer runs at most once.
func (t *Trainer) Run(ctx context.Context, windows []dataset.Window) error {
	if t.state != StateIdle {
		return fmt.Errorf("trainer already ran (state %s)", t.state)
	}
	if len(windows) == 0 {
		t.state = StateFailed
		return fmt.Errorf("no training windows: sequence shorter than the context length")
	}

	t.state = StateRunning
	rng := rand.New(rand.NewSource(t.config.Seed))

	t.log.Info("training started",
		"windows", len(windows),
		"epochs", t.config.Epochs,
		"batch_size", t.config.BatchSize,
		"lr", t.opt.GetLR())

	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			t.state = StateFailed
			return fmt.Errorf("training interrupted at epoch %d: %w", epoch, err)
		}

		epochLoss, err := t.runEpoch(windows, rng)
		if err != nil {
			t.state = StateFailed
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}

		improved := !t.hasBest || epochLoss < t.bestLoss
		if improved {
			if err := t.saveCheckpoint(epoch, epochLoss); err != nil {
				t.state = StateFailed
				return fmt.Errorf("epoch %d: %w", epoch, err)
			}
			t.bestLoss = epochLoss
			t.bestEpoch = epoch
			t.hasBest = true
		}

		t.log.Info("epoch complete",
			"epoch", epoch,
			"loss", epochLoss,
			"best_loss", t.bestLoss,
			"improved", improved)
	}

	t.state = StateConverged
	t.log.Info("training finished", "best_loss", t.bestLoss, "best_epoch", t.bestEpoch)
	return nil
}

// runEpoch performs one shuffled pass over the windows and returns the mean
// loss per window.
func (t *Trainer) runEpoch(windows []dataset.Window, rng *rand.Rand) (float64, error) {
	var total float64
	for _, batch := range dataset.Batches(windows, t.config.BatchSize, rng) {
		t.opt.ZeroGrad()
		loss, err := t.model.FitStep(batch)
		if err != nil {
			return 0, fmt.Errorf("fit step: %w", err)
		}
		t.opt.Step()
		total += loss * float64(len(batch))
	}
	return total / float64(len(windows)), nil
}

// saveCheckpoint snapshots the model weights for a new best epoch.
func (t *Trainer) saveCheckpoint(epoch int, loss float64) error {
	if t.config.CheckpointPath == "" {
		return nil
	}
	meta := t.config.Meta
	meta.Epoch = epoch
	meta.Loss = loss

	if err := serialization.WriteFile(t.config.CheckpointPath, t.model.StateDict(), &meta); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	t.log.Debug("checkpoint written", "path", t.config.CheckpointPath, "epoch", epoch, "loss", loss)
	return nil
}
