package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	sweep := &stubJob{name: "reservation-cleanup"}
	report := &stubJob{name: "low-stock-report"}

	registry := NewRegistry(sweep, report)

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	assert.Same(t, sweep, jobs[0])
	assert.Same(t, report, jobs[1])
}

func TestRegistryDropsDuplicatesAndNil(t *testing.T) {
	sweep := &stubJob{name: "reservation-cleanup"}

	registry := NewRegistry(sweep, nil)
	registry.Register(&stubJob{name: "reservation-cleanup"})

	require.Len(t, registry.Jobs(), 1)
	assert.Same(t, sweep, registry.Jobs()[0])
}

func TestRegistryJobsCopyIsIsolated(t *testing.T) {
	registry := NewRegistry(&stubJob{name: "reservation-cleanup"})

	jobs := registry.Jobs()
	jobs[0] = nil

	require.NotNil(t, registry.Jobs()[0])
}
