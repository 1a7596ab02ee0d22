package levelio

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
)

func TestDump_MatchesSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "level.schema.json"))
	require.NoError(t, err)

	for _, a := range layout.Archetypes {
		for _, level := range generateLevels(t, a, 3) {
			raw, err := json.Marshal(level)
			require.NoError(t, err)

			// числа как json.Number, чтобы digest не терял точность
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			var v any
			require.NoError(t, dec.Decode(&v))

			require.NoError(t, schema.Validate(v), "%s episode %d", a, level.Episode)
		}
	}
}
