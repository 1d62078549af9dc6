package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/project"
)

func defaultRows(t *testing.T) []adapterInfo {
	t.Helper()
	registry, err := adapter.NewRegistry(nil)
	require.NoError(t, err)
	return adapterRows(registry)
}

func TestAdapterRows(t *testing.T) {
	registry, err := adapter.NewRegistry(nil)
	require.NoError(t, err)
	rows := adapterRows(registry)

	require.Len(t, rows, len(project.Types()))

	byType := make(map[string]adapterInfo, len(rows))
	for _, row := range rows {
		byType[row.Type] = row
	}

	// Every type/action pair of the registry shows up, noop cells
	// included; unsupported actions are absent from the row.
	for _, typ := range project.Types() {
		row, ok := byType[string(typ)]
		require.True(t, ok, "no row for type %s", typ)

		a, err := registry.Resolve(typ)
		require.NoError(t, err)
		assert.Equal(t, a.Requires, row.Requires)

		for _, action := range adapter.Actions() {
			spec, supported := a.Command(action)
			if !supported {
				assert.NotContains(t, row.Commands, string(action))
				continue
			}
			if spec.Noop {
				assert.Equal(t, "noop", row.Commands[string(action)], "%s %s", typ, action)
			} else {
				assert.Equal(t, strings.Join(spec.Argv, " "), row.Commands[string(action)], "%s %s", typ, action)
			}
		}
	}
}

func TestRenderAdapters(t *testing.T) {
	rows := defaultRows(t)

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAdapters(&buf, rows, "table"))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 1+len(rows), "header plus one line per type")
		assert.Contains(t, lines[0], "LINT")

		for i, row := range rows {
			line := lines[i+1]
			assert.True(t, strings.HasPrefix(line, row.Type), "line %q should start with %s", line, row.Type)
			for _, command := range row.Commands {
				assert.Contains(t, line, command)
			}
		}

		// make has no lint tool: its last cell renders as a dash.
		makeLine := lines[1]
		fields := strings.Fields(makeLine)
		assert.Equal(t, "-", fields[len(fields)-1])
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAdapters(&buf, rows, "json"))

		var decoded []adapterInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, rows, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAdapters(&buf, rows, "yaml"))

		var decoded []adapterInfo
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, rows, decoded)
	})
}
