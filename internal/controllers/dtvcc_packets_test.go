package controllers

import (
	"testing"

	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDTVCCPackets(t *testing.T) {
	t.Run("single packet", func(t *testing.T) {
		packets, malformed := SplitDTVCCPackets([]byte{0x03, 0x02, 0x21, 0x41})
		assert.Empty(t, malformed)
		assert.Equal(t, [][]byte{{0x21, 0x41}}, packets)
	})

	t.Run("packets between garbage", func(t *testing.T) {
		packets, malformed := SplitDTVCCPackets([]byte{0xff, 0x03, 0x01, 0xaa, 0x10, 0x03, 0x42, 0xbb, 0xcc})
		assert.Empty(t, malformed)
		assert.Equal(t, [][]byte{{0xaa}, {0xbb, 0xcc}}, packets)
	})

	t.Run("only the low 6 bits give the size", func(t *testing.T) {
		packets, _ := SplitDTVCCPackets([]byte{0x03, 0xc1, 0xaa})
		assert.Equal(t, [][]byte{{0xaa}}, packets)
	})

	t.Run("overrun resumes after the marker", func(t *testing.T) {
		packets, malformed := SplitDTVCCPackets([]byte{0x03, 0x05, 0xaa, 0x03, 0x01, 0xbb})
		require.Len(t, malformed, 1)
		assert.ErrorIs(t, malformed[0], entities.ErrPacketOverrun)
		assert.Equal(t, [][]byte{{0xbb}}, packets)
	})

	t.Run("marker without size", func(t *testing.T) {
		packets, malformed := SplitDTVCCPackets([]byte{0x11, 0x03})
		assert.Empty(t, packets)
		require.Len(t, malformed, 1)
		assert.ErrorIs(t, malformed[0], entities.ErrMalformedDTVCC)
	})

	t.Run("no marker", func(t *testing.T) {
		packets, malformed := SplitDTVCCPackets([]byte{0x10, 0x20, 0x30})
		assert.Empty(t, packets)
		assert.Empty(t, malformed)
	})
}

func TestParseServiceBlocks(t *testing.T) {
	tests := []struct {
		name       string
		packet     []byte
		wantBlocks []ServiceBlock
		wantErr    error
	}{
		{
			name:   "two services",
			packet: []byte{0x22, 'a', 'b', 0x62, 'c', 'd'},
			wantBlocks: []ServiceBlock{
				{Service: 1, Data: []byte("ab")},
				{Service: 3, Data: []byte("cd")},
			},
		},
		{
			name:       "null header ends the packet",
			packet:     []byte{0x21, 'a', 0x00, 0x21, 'b'},
			wantBlocks: []ServiceBlock{{Service: 1, Data: []byte("a")}},
		},
		{
			name:       "reserved service stops parsing",
			packet:     []byte{0x21, 'a', 0xe1, 'b'},
			wantBlocks: []ServiceBlock{{Service: 1, Data: []byte("a")}},
			wantErr:    entities.ErrReservedService,
		},
		{
			name:       "overrun keeps earlier blocks",
			packet:     []byte{0x21, 'a', 0x25, 'b'},
			wantBlocks: []ServiceBlock{{Service: 1, Data: []byte("a")}},
			wantErr:    entities.ErrBlockOverrun,
		},
		{
			name:       "six services",
			packet:     []byte{0xc1, 'z'},
			wantBlocks: []ServiceBlock{{Service: 6, Data: []byte("z")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := ParseServiceBlocks(tt.packet)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantBlocks, blocks)
		})
	}
}
