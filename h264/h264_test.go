package h264

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSEI(t *testing.T) {
	tests := []struct {
		name        string
		rbsp        []byte
		wantType    int
		wantSize    int
		wantPayload []byte
		wantErr     error
	}{
		{
			name:        "single byte values",
			rbsp:        []byte{0x04, 0x02, 0xaa, 0xbb, 0x80},
			wantType:    4,
			wantSize:    2,
			wantPayload: []byte{0xaa, 0xbb},
		},
		{
			name:        "0xff continuation",
			rbsp:        append([]byte{0xff, 0x01, 0x01}, 0x7f),
			wantType:    256,
			wantSize:    1,
			wantPayload: []byte{0x7f},
		},
		{
			name:    "payload overruns rbsp",
			rbsp:    []byte{0x04, 0x05, 0x01},
			wantErr: ErrTruncatedSEI,
		},
		{
			name:    "unterminated type",
			rbsp:    []byte{0xff, 0xff},
			wantErr: ErrTruncatedSEI,
		},
		{
			name:    "empty",
			rbsp:    []byte{},
			wantErr: ErrTruncatedSEI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sei, err := ParseSEI(tt.rbsp)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, sei.PayloadType)
			assert.Equal(t, tt.wantSize, sei.PayloadSize)
			assert.Equal(t, tt.wantPayload, sei.Payload)
		})
	}
}

func TestUnescapeRBSP(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x02},
		UnescapeRBSP([]byte{0x00, 0x00, 0x03, 0x01, 0x00, 0x00, 0x03, 0x02}))
	assert.Equal(t, []byte{0x01, 0x02}, UnescapeRBSP([]byte{0x01, 0x02}))
}

func TestParseNALUs(t *testing.T) {
	stream := []byte{
		0x00, 0x00, 0x00, 0x01, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x01, 0x06, 0x04, 0x02, 0x03, 0x01, 0x80,
		0x00, 0x00, 0x01, 0x65, 0x88, 0x84,
	}

	nalus, err := ParseNALUs(stream)
	require.NoError(t, err)
	require.Len(t, nalus.Units, 3)

	assert.Equal(t, AccessUnitDelimiter, nalus.Units[0].UnitType)
	assert.Equal(t, SupplementalEnhancementInformation, nalus.Units[1].UnitType)
	assert.Equal(t, SEIPayloadTypeUserDataRegistered, nalus.Units[1].PayloadType)
	assert.Equal(t, []byte{0x03, 0x01}, nalus.Units[1].Payload)
	assert.Equal(t, CodedSliceIDRPicture, nalus.Units[2].UnitType)
	assert.Equal(t, byte(3), nalus.Units[2].RefIDC)
}

func TestParseNAL_ForbiddenBit(t *testing.T) {
	_, err := ParseNAL([]byte{0x86, 0x04})
	assert.ErrorIs(t, err, ErrForbiddenZeroBit)
}
