package decimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestStatsLogObject(t *testing.T) {
	s := &Stats{InputTriangles: 10, OutputTriangles: 4, Reduction: 0.6, Deleted: 3}
	s.Classifications[Corner] = 2
	s.tallyDecline(declineSplit)
	s.tallyDecline(declineComplex)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, s.MarshalLogObject(enc))
	assert.Equal(t, 10, enc.Fields["input_triangles"])
	assert.Equal(t, 0.6, enc.Fields["reduction"])
	assert.Equal(t, 2, enc.Fields["corner"])
	assert.Equal(t, 1, enc.Fields["declined_split"])
	assert.Equal(t, 2, s.Count(Corner))
	assert.Equal(t, 0, s.DeclinedTriangulation)
}
