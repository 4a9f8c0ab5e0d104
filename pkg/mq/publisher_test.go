package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_InvalidURL(t *testing.T) {
	p, err := NewPublisher("not-an-amqp-url", "rental.events", "rental-service")

	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "dial rabbitmq")
}
