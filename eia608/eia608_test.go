package eia608_test

import (
	"testing"

	"github.com/flavioribeiro/donut-cc/eia608"
	"github.com/flavioribeiro/donut-cc/h264"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WithoutCaptionSEI(t *testing.T) {
	r := eia608.NewEIA608Reader()

	// access unit delimiter then an unregistered user data SEI
	data := []byte{
		0x00, 0x00, 0x00, 0x01, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x01, 0x06, 0x05, 0x02, 0xaa, 0xbb, 0x80,
	}

	captions, err := r.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, captions)
}

func TestParse_InvalidNAL(t *testing.T) {
	r := eia608.NewEIA608Reader()

	_, err := r.Parse([]byte{0x00, 0x00, 0x01, 0x86, 0x04})
	assert.ErrorIs(t, err, h264.ErrForbiddenZeroBit)
}
