package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"github.com/clas12-go/analysis_go/pkg/h5store"
)

func writeH5(t *testing.T, filename, path string, w float64) {
	t.Helper()
	c, err := h5store.Create(filename)
	require.NoError(t, err)
	h := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	h.Fill(0.5, 0.5, w)
	require.NoError(t, c.PutH2D(path, h))
	require.NoError(t, c.Close())
}
