// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     logging
// Description: Applies process-wide settings from configuration
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"github.com/msto63/elm/foundation/core/alloc"
	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/foundation/core/metrics"
	"github.com/msto63/elm/pkg/core/config"
)

// Setup applies the general and allocation settings of cfg to the process:
// the debug logger is hidden unless General.Debug is set, and allocation
// limits are installed when configured. The returned function undoes every
// change in reverse order.
func Setup(cfg *config.Config) (restore func()) {
	var undo []func()

	if !cfg.General.Debug {
		undo = append(undo, elmlog.HideDebug())
	}

	if cfg.Alloc.MaxLiveErrors > 0 {
		var m *metrics.Metrics
		if cfg.Metrics.Enabled {
			m = metrics.Default()
		}
		tracker := alloc.NewTracker(
			alloc.WithLimit(cfg.Alloc.MaxLiveErrors),
			alloc.WithMetrics(m),
		)
		undo = append(undo, alloc.SetDefault(tracker))
	}

	if cfg.Alloc.MaxBytes > 0 {
		undo = append(undo, alloc.SetMaxBytes(cfg.Alloc.MaxBytes))
	}

	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}
}
