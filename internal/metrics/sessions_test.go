package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSessionCounters(t *testing.T) {
	created := testutil.ToFloat64(sessionsCreated)
	RecordSessionCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(sessionsCreated))

	rejected := testutil.ToFloat64(sessionsRejected.WithLabelValues("blank-name"))
	RecordSessionRejected("blank-name")
	assert.Equal(t, rejected+1, testutil.ToFloat64(sessionsRejected.WithLabelValues("blank-name")))

	listed := testutil.ToFloat64(sessionListRequests)
	RecordSessionList()
	assert.Equal(t, listed+1, testutil.ToFloat64(sessionListRequests))
}
