package controllers

import (
	"fmt"

	"github.com/asticode/go-astikit"
	"github.com/flavioribeiro/donut-cc/internal/entities"
)

const dtvccPacketStart = 0x03

// SplitDTVCCPackets extracts the DTVCC packets of a caption user data buffer.
// Each packet starts with a 0x03 marker followed by a byte whose low 6 bits
// give the packet size. A packet overrunning the buffer is dropped and the
// scan resumes right after its marker.
func SplitDTVCCPackets(userData []byte) (packets [][]byte, malformed []error) {
	it := astikit.NewBytesIterator(userData)

	for it.HasBytesLeft() {
		b, err := it.NextByte()
		if err != nil {
			break
		}
		if b != dtvccPacketStart {
			continue
		}
		next := it.Offset()

		header, err := it.NextByte()
		if err != nil {
			malformed = append(malformed, fmt.Errorf("%w: missing size at offset %d", entities.ErrPacketOverrun, next))
			break
		}
		size := int(header & 0x3f)

		packet, err := it.NextBytes(size)
		if err != nil {
			malformed = append(malformed, fmt.Errorf("%w: size %d at offset %d", entities.ErrPacketOverrun, size, next))
			it.Seek(next)
			continue
		}
		packets = append(packets, packet)
	}

	return packets, malformed
}
