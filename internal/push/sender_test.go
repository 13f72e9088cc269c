package push

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSender_Send_Success(t *testing.T) {
	var received providerRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, "server-key", time.Second)
	err := sender.Send(context.Background(), Message{Token: "device-token", Title: "Title", Body: "Body"})

	require.NoError(t, err)
	assert.Equal(t, "key=server-key", authHeader)
	assert.Equal(t, "device-token", received.To)
	assert.Equal(t, "Title", received.Notification.Title)
	assert.Equal(t, "Body", received.Notification.Body)
}

func TestHTTPSender_Send_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, "", time.Second)
	err := sender.Send(context.Background(), Message{Token: "t"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "status 502")
}

func TestHTTPSender_Send_NotConfigured(t *testing.T) {
	sender := NewHTTPSender("", "", time.Second)
	err := sender.Send(context.Background(), Message{Token: "t"})

	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) Send(context.Context, Message) error {
	s.calls++
	return s.err
}

type recordingObserver struct {
	results []string
}

func (o *recordingObserver) ObservePushDelivery(result string) {
	o.results = append(o.results, result)
}

func newTestWorker(sender Sender, observer Observer) *Worker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewWorker(nil, sender, logger, observer)
}

func TestWorker_Process_SingleAttemptOnFailure(t *testing.T) {
	sender := &stubSender{err: assert.AnError}
	observer := &recordingObserver{}
	worker := newTestWorker(sender, observer)

	worker.Process(context.Background(), Message{Token: "t", Title: "x"})

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, []string{ResultFailed}, observer.results)
}

func TestWorker_Process_Results(t *testing.T) {
	observer := &recordingObserver{}

	newTestWorker(&stubSender{}, observer).Process(context.Background(), Message{})
	newTestWorker(&stubSender{err: ErrProviderNotConfigured}, observer).Process(context.Background(), Message{})

	assert.Equal(t, []string{ResultDelivered, ResultSkipped}, observer.results)
}
