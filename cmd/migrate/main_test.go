package main

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UnknownCommand(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = run(context.Background(), "sideways", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRun_NilDB(t *testing.T) {
	for _, cmd := range []string{"", "up", "down", "status"} {
		t.Run(cmd, func(t *testing.T) {
			assert.Error(t, run(context.Background(), cmd, nil))
		})
	}
}
