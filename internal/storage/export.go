package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/cursorsim/internal/motion"
)

type ExportData struct {
	RunMetadata
	Steps  int            `json:"steps"`
	Frames []motion.Frame `json:"frames"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []motion.Frame) error {
	data := ExportData{
		RunMetadata: meta,
		Steps:       len(frames),
		Frames:      frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
