// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"errors"
	"fmt"
	"io"

	"github.com/SoftbearStudios/fractal/terrain"
)

var ErrCorrupt = errors.New("corrupt tile data")

// Encode quantizes a tile to bytes across its bounds and run length encodes
// them row by row. The result should be returned with Data.Pool when sent.
func Encode(key terrain.Key, tile *terrain.Tile) *terrain.Data {
	data := terrain.NewData()
	buffer := Buffer{
		buf: data.Data,
	}

	size := tile.Size()
	buffer.Grow(size * size)

	bounds := tile.Bounds()
	for _, height := range tile.Grid() {
		buffer.writeByte(bounds.Quantize(height))
	}

	data.Key = key
	data.Size = size
	data.Data = buffer.Buffer()
	data.Length = size * size

	return data
}

// Decode returns the quantized heights of data in row major order. Runs must
// cover exactly Length bytes. data is left unchanged.
func Decode(data *terrain.Data) ([]byte, error) {
	if data.Size < 0 || data.Size > terrain.MaxTileSize {
		return nil, fmt.Errorf("%w: tile %s of size %d", ErrCorrupt, data.Key, data.Size)
	}
	if data.Length != data.Size*data.Size || len(data.Data)%2 != 0 {
		return nil, fmt.Errorf("%w: tile %s of size %d with length %d", ErrCorrupt, data.Key, data.Size, data.Length)
	}

	var buffer Buffer
	buffer.Reset(append([]byte(nil), data.Data...))

	heights := make([]byte, data.Length)
	if _, err := io.ReadFull(&buffer, heights); err != nil {
		return nil, fmt.Errorf("%w: tile %s: %v", ErrCorrupt, data.Key, err)
	}
	if trailing := len(buffer.Buffer()); trailing != 0 {
		return nil, fmt.Errorf("%w: tile %s: %d trailing bytes", ErrCorrupt, data.Key, trailing)
	}
	return heights, nil
}
