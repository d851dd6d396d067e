package entities_test

import (
	"testing"

	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	var c entities.Config
	require.NoError(t, envconfig.Process("dtvcc_test_defaults", &c))

	assert.Equal(t, int32(8080), c.HTTPPort)
	assert.Equal(t, 1316, c.TSReadBufferSizeBytes)
	assert.Equal(t, 1, c.PreferredService)
	assert.True(t, c.CaptionsEnabled)

	dc := c.DecoderConfig()
	assert.True(t, dc.Enabled)
	assert.Equal(t, 1, dc.PreferredService)
	assert.Nil(t, dc.WindowOpacity)
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("DTVCC_TEST_OVERRIDES_PREFERREDSERVICE", "3")
	t.Setenv("DTVCC_TEST_OVERRIDES_WINDOWOPACITY", "0.25")
	t.Setenv("DTVCC_TEST_OVERRIDES_FONTFAMILY", "monospace")

	var c entities.Config
	require.NoError(t, envconfig.Process("dtvcc_test_overrides", &c))

	dc := c.DecoderConfig()
	assert.Equal(t, 3, dc.PreferredService)
	assert.Equal(t, "monospace", dc.FontFamily)
	require.NotNil(t, dc.WindowOpacity)
	assert.Equal(t, 0.25, *dc.WindowOpacity)
}

func TestDecodedCaption_Text(t *testing.T) {
	c := entities.DecodedCaption{Runs: []entities.CaptionTextRun{
		{Text: "first\n"},
		{Text: "second"},
	}}
	assert.Equal(t, "first\nsecond", c.Text())
}

func TestValidService(t *testing.T) {
	assert.False(t, entities.ValidService(0))
	assert.True(t, entities.ValidService(1))
	assert.True(t, entities.ValidService(6))
	assert.False(t, entities.ValidService(7))
}
