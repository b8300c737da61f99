package tui

import (
	"time"

	"github.com/boulangers/boulanger/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgSearchDone is sent when the search with sequence number Seq returns rows.
type MsgSearchDone struct {
	Rows    []domain.Row
	Seq     uint64
	Elapsed time.Duration
}

func (MsgSearchDone) sealed() {}

// MsgSearchFailed is sent when the search with sequence number Seq fails.
type MsgSearchFailed struct {
	Err error
	Seq uint64
}

func (MsgSearchFailed) sealed() {}
