package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zoneRequest struct {
	Zone string `validate:"zone"`
}

func TestZoneTag(t *testing.T) {
	for _, zone := range []string{"", "A", "C", "COLD", "mezz2"} {
		assert.Empty(t, ValidateStruct(zoneRequest{Zone: zone}), zone)
	}
	for _, zone := range []string{"A-B", "cold room", "zone_1", "ABCDEFGHIJKLMNOPQ"} {
		errs := ValidateStruct(zoneRequest{Zone: zone})
		require.Len(t, errs, 1, zone)
		assert.Equal(t, "zone", errs[0].Tag)
	}
}

func TestSummary(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
		Qty  int    `validate:"gt=0"`
	}
	errs := ValidateStruct(req{})
	require.Len(t, errs, 2)
	assert.Equal(t, "req.Name failed on 'required'; req.Qty failed on 'gt=0'", Summary(errs))
}
