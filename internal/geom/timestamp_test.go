package geom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFloorTimestamp_TruncatesFractionalSeconds(t *testing.T) {
	ts, err := FloorTimestamp(1000.9)
	require.NoError(t, err)
	require.Equal(t, time.Unix(1000, 0).UTC(), ts)
}

func TestCeilTimestamp_RoundsUpFractionalSeconds(t *testing.T) {
	ts, err := CeilTimestamp(1000.1)
	require.NoError(t, err)
	require.Equal(t, time.Unix(1001, 0).UTC(), ts)
}

func TestFloorTimestamp_WholeSecondIsUnchanged(t *testing.T) {
	ts, err := FloorTimestamp(2000)
	require.NoError(t, err)
	require.Equal(t, time.Unix(2000, 0).UTC(), ts)
}

func TestSecondsToTime_RejectsOutOfRangeValues(t *testing.T) {
	_, err := FloorTimestamp(maxRepresentableSeconds + 1)
	require.Error(t, err)

	_, err = CeilTimestamp(minRepresentableSeconds - 1)
	require.Error(t, err)
}
