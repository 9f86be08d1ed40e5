package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/api/employees", "GET", 200, 3*time.Millisecond)
			m.RecordDecision("employees.list", "allow")
		}()
	}
	wg.Wait()
	m.RecordError("/api/employees", "POST", "FORBIDDEN")

	snap := m.Snapshot()
	assert.Equal(t, int64(10), snap.Requests["/api/employees|GET|200"])
	assert.Equal(t, int64(30), snap.RequestMillis["/api/employees|GET|200"])
	assert.Equal(t, int64(10), snap.AccessDecisions["employees.list|allow"])
	assert.Equal(t, int64(1), snap.Errors["/api/employees|POST|FORBIDDEN"])

	snap.Requests["/api/employees|GET|200"] = 0
	assert.Equal(t, int64(10), m.Snapshot().Requests["/api/employees|GET|200"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordDecision("op", "allow")
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
