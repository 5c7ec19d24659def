package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

type callLog struct {
	calls []string
}

func (c *callLog) add(s string) { c.calls = append(c.calls, s) }

type fakeEngines struct{ log *callLog }

func (f fakeEngines) Start(context.Context) { f.log.add("engines.start") }
func (f fakeEngines) Close()                { f.log.add("engines.close") }

type fakeWorker struct{ log *callLog }

func (f fakeWorker) Start(context.Context) { f.log.add("workers.start") }
func (f fakeWorker) Stop()                 { f.log.add("workers.stop") }

type fakeUI struct {
	log *callLog
	err error
}

func (f fakeUI) Run(ctx context.Context) error {
	f.log.add("ui.run")
	return f.err
}

func TestApp_RunLifecycleOrder(t *testing.T) {
	log := &callLog{}
	app := NewApp(fakeEngines{log}, fakeUI{log: log}, fakeWorker{log}, logger.Nop())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, []string{
		"engines.start",
		"workers.start",
		"ui.run",
		"workers.stop",
		"engines.close",
	}, log.calls)
}

func TestApp_RunTearsDownOnUIError(t *testing.T) {
	log := &callLog{}
	uiErr := errors.New("terminal gone")
	app := NewApp(fakeEngines{log}, fakeUI{log: log, err: uiErr}, fakeWorker{log}, logger.Nop())

	err := app.Run(context.Background())

	assert.ErrorIs(t, err, uiErr)
	assert.Contains(t, log.calls, "engines.close")
	assert.Contains(t, log.calls, "workers.stop")
}
