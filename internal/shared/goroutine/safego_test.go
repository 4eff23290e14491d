package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"locates/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := SafeGo(logger.NewNopLogger(), "sweep", func() {
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
}

func TestSafeGo_RunsFunction(t *testing.T) {
	ran := false
	<-SafeGo(logger.NewNopLogger(), "sync", func() { ran = true })
	assert.True(t, ran)
}
