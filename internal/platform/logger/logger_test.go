package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"testing"

	"github.com/rollbar/rollbar-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/domain/model"
)

func TestLoggerPrintsLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0), "", "test")

	l.Info("quiz created")
	l.Warn("invalid question format", "a|b")
	l.Error("submit failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "INFO: quiz created")
	assert.Contains(t, out, "WARN: invalid question format [a|b]")
	assert.Contains(t, out, "ERROR: submit failed [boom]")
	assert.False(t, l.remote)
}

func personOf(t *testing.T, items []interface{}) *rollbar.Person {
	t.Helper()
	for _, item := range items {
		if ctx, ok := item.(context.Context); ok {
			p, _ := rollbar.PersonFromContext(ctx)
			return p
		}
	}
	t.Fatal("no context among rollbar items")
	return nil
}

func TestPrepareCarriesPersonPerCall(t *testing.T) {
	l := New(log.New(&bytes.Buffer{}, "", 0), "", "test")
	boom := errors.New("boom")

	items := l.prepare("submit failed", []interface{}{int64(7), boom, model.User{ID: 5, Username: "sita", Email: "s@example.com"}})
	p := personOf(t, items)
	require.NotNil(t, p)
	assert.Equal(t, "5", p.Id)
	assert.Equal(t, "sita", p.Username)
	assert.Contains(t, items, boom)
	extras := items[1].(map[string]interface{})
	assert.Equal(t, "submit failed", extras["message"])
	assert.Equal(t, []interface{}{int64(7)}, extras["args"])

	items = l.prepare("lock expired", []interface{}{"submit:abc"})
	assert.Nil(t, personOf(t, items))
	assert.Equal(t, "lock expired", items[2])
}

func TestPrepareConcurrentUsers(t *testing.T) {
	l := New(log.New(&bytes.Buffer{}, "", 0), "", "test")
	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			items := l.prepare("render failed", []interface{}{model.User{ID: id}})
			p, ok := rollbar.PersonFromContext(items[0].(context.Context))
			if assert.True(t, ok) {
				assert.Equal(t, strconv.FormatInt(id, 10), p.Id)
			}
		}(i)
	}
	wg.Wait()
}
