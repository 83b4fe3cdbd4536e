// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

// Buffer run length encodes bytes.
// Each run is two bytes: count - 1 followed by the value.
type Buffer struct {
	buf []byte
	off int // Read position
}

func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.off = 0
}

func (buffer *Buffer) writeByte(b byte) {
	buf := buffer.buf
	end := len(buf) - 2

	const maxCount = 255
	if end >= buffer.off && buf[end+1] == b && buf[end] < maxCount {
		// Add 1 to count
		buf[end]++
	} else {
		// Start new run
		buf = append(buf, 0, b)
	}

	buffer.buf = buf
}

func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeByte(b)
	}
	return len(buf), nil
}

// readByte consumes one byte of the current run. The caller checks that a
// full run remains.
func (buffer *Buffer) readByte() byte {
	count := buffer.buf[buffer.off]
	b := buffer.buf[buffer.off+1]

	if count > 0 {
		buffer.buf[buffer.off] = count - 1
	} else {
		buffer.off += 2
	}

	return b
}

// Read decodes into buf. It consumes the buffer, so a Buffer can only be read once.
func (buffer *Buffer) Read(buf []byte) (int, error) {
	i := 0
	for ; i < len(buf) && buffer.off+1 < len(buffer.buf); i++ {
		buf[i] = buffer.readByte()
	}

	if i == 0 && len(buf) > 0 {
		if buffer.off < len(buffer.buf) {
			// Half a run
			return 0, io.ErrUnexpectedEOF
		}
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n elements
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if old := buffer.Buffer(); cap(old)-len(old) < compressed {
		buf := make([]byte, len(old), len(old)+compressed)
		copy(buf, old)
		buffer.buf = buf
		buffer.off = 0
	}
}

func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}
