package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an UpdateSource fed from a test-owned channel.
type fakeSource struct {
	updates    chan tgbotapi.Update
	requests   []tgbotapi.Chattable
	requestErr error
	gotConfig  tgbotapi.UpdateConfig
	stopped    atomic.Bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{updates: make(chan tgbotapi.Update)}
}

func (f *fakeSource) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSource) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	f.gotConfig = config
	return f.updates
}

func (f *fakeSource) StopReceivingUpdates() {
	f.stopped.Store(true)
}

func TestNewPoller_Validation(t *testing.T) {
	_, err := NewPoller(PollerConfig{Handler: &recordingHandler{}})
	assert.Error(t, err)

	_, err = NewPoller(PollerConfig{Source: newFakeSource()})
	assert.Error(t, err)
}

func TestPoller_DispatchesSequentiallyUntilCancelled(t *testing.T) {
	src := newFakeSource()
	h := &recordingHandler{err: errors.New("handler failure is logged only")}
	p, err := NewPoller(PollerConfig{Source: src, Handler: h, Logger: testLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// Unbuffered sends only complete once the loop is ready for the next update.
	for i := 1; i <= 3; i++ {
		src.updates <- tgbotapi.Update{UpdateID: i}
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	got := h.received()
	require.Len(t, got, 3)
	for i, u := range got {
		assert.Equal(t, i+1, u.UpdateID)
	}
	assert.True(t, src.stopped.Load())
	assert.Equal(t, DefaultPollTimeout, src.gotConfig.Timeout)

	require.Len(t, src.requests, 1)
	_, ok := src.requests[0].(tgbotapi.DeleteWebhookConfig)
	assert.True(t, ok, "first request should delete the webhook, got %T", src.requests[0])
}

func TestPoller_StopsWhenChannelCloses(t *testing.T) {
	src := newFakeSource()
	p, err := NewPoller(PollerConfig{Source: src, Handler: &recordingHandler{}, Logger: testLogger()})
	require.NoError(t, err)

	close(src.updates)
	assert.NoError(t, p.Run(context.Background()))
}

func TestPoller_DeleteWebhookFailure(t *testing.T) {
	src := newFakeSource()
	src.requestErr = errors.New("Unauthorized")
	h := &recordingHandler{}
	p, err := NewPoller(PollerConfig{Source: src, Handler: h, Logger: testLogger()})
	require.NoError(t, err)

	err = p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete webhook")
	assert.False(t, src.stopped.Load())
}

func TestRegisterWebhook(t *testing.T) {
	src := newFakeSource()

	require.NoError(t, RegisterWebhook(src, "https://bot.example.com/", testToken))

	require.Len(t, src.requests, 1)
	wh, ok := src.requests[0].(tgbotapi.WebhookConfig)
	require.True(t, ok)
	assert.Equal(t, "https://bot.example.com/"+testToken, wh.URL.String())
}

func TestRegisterWebhook_ErrorIsRedacted(t *testing.T) {
	src := newFakeSource()
	src.requestErr = errors.New("Post https://api.telegram.org/bot" + testToken + "/setWebhook: EOF")

	err := RegisterWebhook(src, "https://bot.example.com", testToken)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}
