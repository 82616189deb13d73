// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package progress implements the state behind a single live indicator.
//
// A Progress is written by any number of producer goroutines and read by
// one renderer. Every field lives in its own atomic slot, so a setter never
// blocks and never tears a value, but there is no multi-field snapshot: a
// render may see a new position next to an old message.
//
// # Usage
//
//	p, err := progress.New(
//	    progress.WithLength(int64(len(items))),
//	    progress.WithBarStyle("fine"),
//	    progress.WithTemplate("%{bar.cyan} %<eta.dim>4s %<pct> 3d%% %{msg.green}"),
//	)
//	if err != nil {
//	    return err // bad template or style, reported at construction
//	}
//	for i, item := range items {
//	    p.SetPosition(int64(i))
//	    p.SetMessage(item.Name)
//	}
//	p.Finish("done")
//
// # Fraction
//
// Fraction checks zero position before zero length, so a Progress at 0 of 0
// reports 0.0 and one at 5 of 0 reports 1.0. An unbounded length reports
// 0.0 until Finish latches the length.
package progress
