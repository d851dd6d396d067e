package web_test

import (
	"context"
	"strings"
	"testing"

	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/controllers/engine"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestDependencies_EngineLifecycle(t *testing.T) {
	var (
		e *engine.CaptionEngine
		d *controllers.CaptionDecoder
		c *entities.Config
	)
	app := fxtest.New(t,
		web.Dependencies(),
		fx.Populate(&e, &d, &c),
	)
	app.RequireStart()

	assert.Equal(t, entities.DecoderConfigured, d.GetState())
	assert.Equal(t, c.PreferredService, d.CurrentService())
	assert.True(t, d.Config().Enabled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, e.Serve(ctx, "cancelled", strings.NewReader("")))
	assert.ErrorIs(t, e.Run(context.Background(), ""), entities.ErrMissingInput)
	assert.Error(t, e.Run(context.Background(), "/does/not/exist.ts"))

	app.RequireStop()
	assert.Equal(t, entities.DecoderClosed, d.GetState())
}
