package fixedpoint

import (
	"errors"
	"math"
	"testing"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValues(t *testing.T) {
	require.Equal(t, int64(34052235), Encode(34.052235))
	require.Equal(t, int64(-118243683), Encode(-118.243683))
	require.Equal(t, int64(0), Encode(0))
	require.Equal(t, int64(90000000), Encode(90))
	require.Equal(t, int64(-180000000), Encode(-180))
}

func TestRoundTrip_SixDecimalPlaces(t *testing.T) {
	coords := []float64{
		34.052235, -118.243683, 51.507351, -0.127758,
		-33.868820, 151.209290, 89.999999, -89.999999,
		179.999999, -179.999999, 0.000001, -0.000001,
	}
	for _, x := range coords {
		got := Decode(Encode(x))
		require.InDelta(t, x, got, 0.0000005, "coordinate %v", x)
	}
}

func TestRoundTrip_Sweep(t *testing.T) {
	for x := -180.0; x <= 180.0; x += 0.73 {
		rounded := math.Round(x*Scale) / Scale
		require.InDelta(t, rounded, Decode(Encode(x)), 1e-9)
	}
}

func TestValidateLatitude(t *testing.T) {
	require.NoError(t, ValidateLatitude(34.052235))
	require.NoError(t, ValidateLatitude(-90))
	require.NoError(t, ValidateLatitude(90))

	err := ValidateLatitude(90.000001)
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrValidation))
	require.Error(t, ValidateLatitude(math.NaN()))
}

func TestValidateLongitude(t *testing.T) {
	require.NoError(t, ValidateLongitude(-118.243683))
	require.NoError(t, ValidateLongitude(180))

	err := ValidateLongitude(-180.5)
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrValidation))
}
