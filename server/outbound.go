// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import "github.com/SoftbearStudios/fractal/terrain"

type (
	// Tile is the compressed tile under a session's cursor.
	Tile struct {
		*terrain.Data
	}

	// Error reports an inbound message that could not be applied.
	Error struct {
		Message string `json:"message"`
	}
)

func init() {
	registerOutbound(
		Tile{},
		Error{},
	)
}

// Pool is a no-op; errors are not pooled.
func (Error) Pool() {}
