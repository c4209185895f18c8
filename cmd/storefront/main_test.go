package main

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestShutdownStackRunsInReverseOnce(t *testing.T) {
	var order []string
	var stack shutdownStack
	stack.push(func(context.Context) error { order = append(order, "tracing"); return nil })
	stack.push(func(context.Context) error { order = append(order, "redis"); return errors.New("close failed") })
	stack.push(func(context.Context) error { order = append(order, "workspaces"); return nil })

	stack.run(logger.Nop())
	stack.run(logger.Nop())
	assert.Equal(t, []string{"workspaces", "redis", "tracing"}, order)
}

func TestAbortFlushesBeforeExit(t *testing.T) {
	var events []string
	original := exit
	exit = func(code int) {
		events = append(events, "exit")
		assert.Equal(t, 1, code)
	}
	t.Cleanup(func() { exit = original })

	var stack shutdownStack
	stack.push(func(context.Context) error { events = append(events, "flush spans"); return nil })
	stack.abort(context.Background(), logger.Nop(), "failed to create backend client", errors.New("bad url"))

	assert.Equal(t, []string{"flush spans", "exit"}, events)
}
