// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"

	"github.com/SoftbearStudios/fractal/terrain"
)

// Make sure to register in init function
type (
	// Pan moves the view one tile north, east, south or west.
	Pan struct {
		Direction string `json:"direction"`
	}

	// ZoomIn moves the view to the north west quarter of the current tile.
	ZoomIn struct{}

	// ZoomOut moves the view to the tile containing the current tile.
	ZoomOut struct{}

	// Goto jumps to any tile.
	Goto struct {
		terrain.Key
	}

	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}
)

func init() {
	registerInbound(
		Pan{},
		ZoomIn{},
		ZoomOut{},
		Goto{},
	)
}

func (data Pan) Inbound(session *Session) error {
	dir, err := terrain.ParseDirection(data.Direction)
	if err != nil {
		return err
	}
	session.navigator.Pan(dir)
	return nil
}

func (data ZoomIn) Inbound(session *Session) error {
	session.navigator.ZoomIn()
	return nil
}

func (data ZoomOut) Inbound(session *Session) error {
	session.navigator.ZoomOut()
	return nil
}

func (data Goto) Inbound(session *Session) error {
	session.navigator.Goto(data.Key)
	return nil
}

func (data InvalidInbound) Inbound(*Session) error {
	return fmt.Errorf("invalid message type %q", data.messageType)
}
