package editor

import (
	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/paste"
)

// LoadedMsg delivers a paste body fetched by Load.
type LoadedMsg struct {
	ID     string
	Seq    uint64
	Result backend.Result[string]
}

// MetaMsg delivers paste metadata fetched by Load.
type MetaMsg struct {
	ID     string
	Seq    uint64
	Result backend.Result[paste.Meta]
}

// SavedMsg reports the outcome of Save.
type SavedMsg struct {
	Request backend.SaveRequest
	Meta    paste.SavedMeta
	Err     error
}
