// Package synth renders MIDI files to audio by shelling out to an
// installed synthesizer.
//
// Rendering happens in two steps: MIDI to WAV via timidity or fluidsynth
// (whichever is on PATH, timidity preferred), then WAV to MP3 via ffmpeg.
// The intermediate WAV is removed after a successful conversion.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// DefaultSoundFont is the soundfont path passed to fluidsynth.
const DefaultSoundFont = "/usr/share/sounds/sf2/FluidR3_GM.sf2"

// ErrNoSynthesizer indicates neither timidity nor fluidsynth is installed.
var ErrNoSynthesizer = errors.New("no MIDI synthesizer found: install timidity or fluidsynth")

// ErrNoEncoder indicates ffmpeg is not installed.
var ErrNoEncoder = errors.New("ffmpeg not found: MP3 encoding unavailable")

// Renderer converts MIDI files to audio using external tools.
type Renderer struct {
	SoundFont string       // fluidsynth soundfont (default: DefaultSoundFont)
	Logger    *slog.Logger // defaults to slog.Default()

	// lookPath is swapped out in tests.
	lookPath func(string) (string, error)
	runner   func(ctx context.Context, name string, args ...string) error
}

// NewRenderer creates a renderer with defaults.
func NewRenderer() *Renderer {
	return &Renderer{
		SoundFont: DefaultSoundFont,
		Logger:    slog.Default(),
		lookPath:  exec.LookPath,
		runner:    runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RenderWAV converts a MIDI file to WAV.
func (r *Renderer) RenderWAV(ctx context.Context, midiPath, wavPath string) error {
	if _, err := r.lookPath("timidity"); err == nil {
		r.Logger.Info("rendering audio", "tool", "timidity", "midi", midiPath, "wav", wavPath)
		return r.runner(ctx, "timidity", midiPath, "-Ow", "-o", wavPath)
	}

	if _, err := r.lookPath("fluidsynth"); err == nil {
		r.Logger.Info("rendering audio", "tool", "fluidsynth", "midi", midiPath, "wav", wavPath)
		return r.runner(ctx, "fluidsynth", "-ni", r.SoundFont, midiPath, "-F", wavPath, "-r", "44100")
	}

	return ErrNoSynthesizer
}

// RenderMP3 converts a MIDI file to MP3, using a WAV intermediate next to
// the output file.
func (r *Renderer) RenderMP3(ctx context.Context, midiPath, mp3Path string) error {
	if _, err := r.lookPath("ffmpeg"); err != nil {
		return ErrNoEncoder
	}

	wavPath := strings.TrimSuffix(mp3Path, ".mp3") + ".wav"
	if err := r.RenderWAV(ctx, midiPath, wavPath); err != nil {
		return err
	}
	defer os.Remove(wavPath)

	r.Logger.Info("encoding mp3", "wav", wavPath, "mp3", mp3Path)
	if err := r.runner(ctx, "ffmpeg", "-y", "-i", wavPath, "-codec:a", "libmp3lame", "-qscale:a", "2", mp3Path); err != nil {
		return err
	}
	return nil
}
