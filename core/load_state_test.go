package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdb2csv/rdb2csv/core"
)

func TestLoadState_String(t *testing.T) {
	r := require.New(t)

	r.Equal("reading", core.LoadStateReading.String())
	r.Equal("loaded", core.LoadStateLoaded.String())
	r.Equal("failed", core.LoadStateFailed.String())
	r.Equal("unknown", core.LoadStateUnknown.String())
	r.Equal("unknown", core.LoadState(42).String())
}
