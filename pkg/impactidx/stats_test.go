package impactidx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadImpactStatsRoundTrip(t *testing.T) {
	buf := make([]byte, impactStatsRecordLen)
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(1))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(5))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(0))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(4))
	binary.LittleEndian.PutUint32(buf[32:36], 3)
	binary.LittleEndian.PutUint32(buf[36:40], 1)
	binary.LittleEndian.PutUint32(buf[40:44], 0)

	stats, err := LoadImpactStats(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 1.0, stats.WqtMin)
	require.Equal(t, 5.0, stats.WqtMax)
	require.Equal(t, 0.0, stats.Slope)
	require.Equal(t, 4.0, stats.AvgFT)
	require.Equal(t, uint32(3), stats.QuantBits)
	require.Equal(t, uint32(1), stats.Version)
}

func TestLoadImpactStatsShortBuffer(t *testing.T) {
	_, err := LoadImpactStats(make([]byte, 4), binary.LittleEndian)
	require.Error(t, err)
}
