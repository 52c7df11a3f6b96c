package stationimporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitmerge/pkg/ctdf"
)

func TestParseFile(t *testing.T) {
	input := `code,name,city,aliases
NDLS,New Delhi,Delhi,Delhi | New Delhi Railway Station|Delhi
nzm,Hazrat Nizamuddin,Delhi,Nizamuddin
,Missing Code,Nowhere,
MMCT,Mumbai Central,Mumbai
`

	stations, err := ParseFile(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 3)

	assert.Equal(t, &ctdf.Station{
		Code:    "NDLS",
		Name:    "New Delhi",
		City:    "Delhi",
		Aliases: []string{"Delhi", "New Delhi Railway Station"},
	}, stations[0])
	assert.Equal(t, "NZM", stations[1].Code)
	assert.Equal(t, "MMCT", stations[2].Code)
	assert.Empty(t, stations[2].Aliases)
}
