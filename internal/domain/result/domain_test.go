package result

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		success   bool
		latency   float64
		threshold float64
		want      Status
	}{
		{"fast success", true, 5.0, 12.0, StatusColo},
		{"just under threshold", true, 11.99, 12.0, StatusColo},
		{"exactly at threshold", true, 12.0, 12.0, StatusSlow},
		{"well over threshold", true, 50.0, 12.0, StatusSlow},
		{"failure with high latency", false, 1000.0, 12.0, StatusFail},
		{"failure with zero latency", false, 0.0, 12.0, StatusFail},
		{"failure under threshold", false, 1.0, 12.0, StatusFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.success, tc.latency, tc.threshold))
		})
	}
}

func TestSummarize(t *testing.T) {
	rows := []Result{
		{Status: StatusColo}, {Status: StatusColo}, {Status: StatusColo},
		{Status: StatusSlow}, {Status: StatusSlow},
		{Status: StatusFail},
	}
	s := Summarize(rows)
	require.Equal(t, 3, s.Colo)
	require.Equal(t, 6, s.Total)
	require.InDelta(t, 50.0, s.Percent(), 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, 0, s.Colo)
	require.Equal(t, 0, s.Total)
	require.Zero(t, s.Percent())
}
