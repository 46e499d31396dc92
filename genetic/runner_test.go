package genetic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunsToCompletion(t *testing.T) {
	e := newTestEngine(t, testConfig())
	r := NewRunner(e, MaxGenerations(15))
	r.Start(context.Background())
	r.Start(context.Background())

	select {
	case <-r.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not finish")
	}
	require.NoError(t, r.Err())
	assert.False(t, r.Running())
	assert.Equal(t, 15, r.Engine().Generation())

	report := <-r.Reports()
	assert.Equal(t, 15, report.Generation)
}

func TestRunner_StopEndsRun(t *testing.T) {
	e := newTestEngine(t, testConfig())
	r := NewRunner(e, nil)
	r.Start(context.Background())

	select {
	case <-r.Reports():
	case <-time.After(10 * time.Second):
		t.Fatal("no report")
	}
	r.Stop()
	r.Stop()

	assert.NoError(t, r.Err())
	assert.False(t, r.Running())
}

func TestRunner_SurfacesEngineError(t *testing.T) {
	boom := errors.New("surface lost")
	cfg := testConfig()
	e, err := NewEngine(cfg, failingRasterizer{err: boom}, solidTarget(16, 12, [4]byte{}))
	require.NoError(t, err)

	r := NewRunner(e, nil)
	r.Start(context.Background())
	<-r.Done()
	assert.Same(t, boom, r.Err())
}

func TestRunner_StopBeforeStart(t *testing.T) {
	r := NewRunner(newTestEngine(t, testConfig()), nil)
	r.Stop()
	assert.False(t, r.Running())
	assert.NoError(t, r.Err())
}
