package controllers

import (
	"fmt"

	"github.com/asticode/go-astikit"
	"github.com/flavioribeiro/donut-cc/internal/entities"
)

// ServiceBlock is the data one DTVCC packet carries for a caption service.
type ServiceBlock struct {
	Service int
	Data    []byte
}

// ParseServiceBlocks splits a DTVCC packet payload into service blocks. Each
// block header holds the service number in its top 3 bits and the block size
// in its low 5 bits. Parsing stops at a null or reserved service header or at a
// block overrunning the packet; blocks parsed so far are kept.
func ParseServiceBlocks(packet []byte) ([]ServiceBlock, error) {
	var blocks []ServiceBlock
	it := astikit.NewBytesIterator(packet)

	for it.HasBytesLeft() {
		offset := it.Offset()
		header, err := it.NextByte()
		if err != nil {
			break
		}

		service := int(header >> 5)
		size := int(header & 0x1f)
		if service == 0 {
			// null block header, the rest is padding
			break
		}
		if !entities.ValidService(service) {
			return blocks, fmt.Errorf("%w: %d at offset %d", entities.ErrReservedService, service, offset)
		}

		data, err := it.NextBytes(size)
		if err != nil {
			return blocks, fmt.Errorf("%w: service %d size %d at offset %d", entities.ErrBlockOverrun, service, size, offset)
		}
		blocks = append(blocks, ServiceBlock{Service: service, Data: data})
	}

	return blocks, nil
}
