// Package serialization implements the .muse checkpoint format.
//
// Layout:
//
//	0x00-0x03  magic bytes "MUSE"
//	0x04-0x07  format version (uint32 LE)
//	0x08-0x0F  header size (uint64 LE)
//	0x10-0x17  data size (uint64 LE)
//	0x18-0x1F  reserved
//	0x20-0x3F  SHA-256 checksum of the tensor data section
//	0x40-      JSON header, then padding to a 64-byte boundary
//	...        tensor data, float32 little-endian, in header order
//
// The checksum covers only the data section; a corrupted header fails JSON
// parsing on its own. Tensors are written in sorted name order so identical
// state dictionaries always produce byte-identical files.
package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "MUSE"
	FormatVersion   = 1
	FixedHeaderSize = 64   // fixed header is 0x40 bytes
	HeaderAlignment = 64   // tensor data aligned to 64 bytes
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // checksum position in the fixed header

	// MaxHeaderSize bounds the JSON header so a corrupted size field cannot
	// trigger a huge allocation.
	MaxHeaderSize = 16 * 1024 * 1024
)

// Header is the JSON header of a .muse file.
type Header struct {
	FormatVersion int             `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	Tensors       []TensorMeta    `json:"tensors"`
	Checkpoint    *CheckpointMeta `json:"checkpoint,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`   // parameter name (e.g. "lstm.weight_ih")
	Shape  []int  `json:"shape"`  // tensor shape
	Offset int64  `json:"offset"` // byte offset within the data section
	Size   int64  `json:"size"`   // size in bytes
}

// CheckpointMeta records the training state and the model configuration the
// weights were trained under. Loaders compare ContextLen and VocabSize
// against the current configuration before restoring.
type CheckpointMeta struct {
	Epoch      int     `json:"epoch"`       // epoch that produced these weights
	Loss       float64 `json:"loss"`        // training loss at that epoch
	ContextLen int     `json:"context_len"` // input window length
	VocabSize  int     `json:"vocab_size"`  // vocabulary size
	EmbedDim   int     `json:"embed_dim"`   // embedding vector size
	Hidden     int     `json:"hidden"`      // LSTM hidden size
}
