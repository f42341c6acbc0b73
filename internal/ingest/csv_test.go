package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `# Timestamp,Type of mobile,MMSI,Latitude,Longitude,Navigational status,ROT,SOG,COG,Heading,IMO,Callsign,Name,Ship type,Cargo type,Width,Length,Type of position fixing device,Draught,Destination,ETA,Data source type,A,B,C,D
01/09/2025 00:00:00,Base Station,2190064,56.716570,11.519047,Unknown value,,,,,Unknown,Unknown,,Undefined,,,,GPS,,Unknown,,AIS,,,,
01/09/2025 00:00:10,Class A,219024000,57.717413,10.586715,Engaged in fishing,0.0,0.0,4.8,309,Unknown,Unknown,,Undefined,,,,Undefined,,Unknown,,AIS,,,,
01/09/2025 00:01:10,Class A,219024000,57.717500,10.586800,Engaged in fishing,0.0,1.0,4.8,309,Unknown,Unknown,,Undefined,,,,Undefined,,Unknown,,AIS,,,,
`

func TestReadCSV_ParsesRows(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, uint64(219024000), rows[1].MMSI)
	require.Equal(t, NavStatusEngagedInFishing, rows[1].NavStatus)
	require.Equal(t, NavStatusUnknown, rows[0].NavStatus)
	require.Nil(t, rows[0].SOG)
	require.NotNil(t, rows[1].SOG)
	require.InDelta(t, 0.0, *rows[1].SOG, 1e-9)
}

func TestGroupByMMSI_BuildsSortedTrajectory(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	byMMSI, err := GroupByMMSI(rows)
	require.NoError(t, err)

	// The base-station row (MMSI 2190064) has only one observation and
	// cannot form a LineStringM; it is dropped.
	_, ok := byMMSI[2190064]
	require.False(t, ok)

	ls, ok := byMMSI[219024000]
	require.True(t, ok)
	require.Equal(t, 2, ls.Len())
	require.True(t, ls.First().M() <= ls.Last().M())
}

func TestParseNavStatus_ExactMatch(t *testing.T) {
	require.Equal(t, NavStatusMoored, ParseNavStatus("Moored"))
	require.Equal(t, NavStatusUnknown, ParseNavStatus("moored"))
	require.Equal(t, NavStatusUnknown, ParseNavStatus("garbage"))
}
