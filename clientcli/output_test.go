package clientcli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/clientcli"
)

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &clientcli.JSONFormatter{}, clientcli.NewFormatter(true))
	assert.IsType(t, &clientcli.HumanFormatter{}, clientcli.NewFormatter(false))
}

func TestHumanFormatter_Overview(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	err := f.FormatOverview(&buf, pnaes.Overview{AmbulatoryRecords: 6, Regions: 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ambulatory records: 6")
	assert.Contains(t, buf.String(), "Regions:            3")
}

func TestHumanFormatter_Regions(t *testing.T) {
	t.Run("with ratios", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		ratio := 75.0

		err := f.FormatRegions(&buf, []pnaes.RegionSummary{
			{Region: "Norte", ValueTotal: 150, QuantityTotal: 15, Municipalities: 2, ValuePerMunicip: &ratio, QuantityPerMunicip: &ratio},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "REGION")
		assert.Contains(t, buf.String(), "Norte")
		assert.Contains(t, buf.String(), "75.00")
	})

	t.Run("nil ratio renders dash", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}

		err := f.FormatRegions(&buf, []pnaes.RegionSummary{{Region: "Norte"}})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "-")
	})
}

func TestHumanFormatter_States(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	err := f.FormatStates(&buf, []pnaes.StateSummary{
		{State: "SP", ValueTotal: 9000.5, QuantityTotal: 100, Municipalities: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "UF")
	assert.Contains(t, buf.String(), "SP")
	assert.Contains(t, buf.String(), "9000.50")
}

func TestHumanFormatter_Years(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	err := f.FormatYears(&buf, []pnaes.YearSummary{
		{Year: "2020", ValueTotal: 9400.5, QuantityTotal: 130},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2020")
	assert.Contains(t, buf.String(), "9400.50")
}

func TestHumanFormatter_Schema(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	err := f.FormatSchema(&buf, map[string]pnaes.TableProbe{
		"municipio":      {Columns: []string{"codigo_municipio", "nome_municipio"}},
		"pib_municipios": {Error: "relation does not exist"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Table: municipio")
	assert.Contains(t, out, "  - codigo_municipio")
	assert.Contains(t, out, "Error: relation does not exist")
	// Sorted output: municipio before pib_municipios.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("municipio")), bytes.Index(buf.Bytes(), []byte("pib_municipios")))
}

func TestHumanFormatter_ProfileList(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	err := f.FormatProfileList(&buf, []clientcli.Profile{
		{Name: "local", Endpoint: "http://localhost:8501"},
		{Name: "prod", Endpoint: "https://dashboard.dataiesb.com"},
	}, "prod")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "* prod")
	assert.Contains(t, buf.String(), "  local")
}

func TestJSONFormatter(t *testing.T) {
	t.Run("regions", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}

		err := f.FormatRegions(&buf, []pnaes.RegionSummary{{Region: "Norte"}})
		require.NoError(t, err)

		var out []pnaes.RegionSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 1)
		assert.Equal(t, "Norte", out[0].Region)
	})

	t.Run("profile list marks default", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}

		err := f.FormatProfileList(&buf, []clientcli.Profile{
			{Name: "local", Endpoint: "http://localhost:8501"},
		}, "local")
		require.NoError(t, err)

		var out []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 1)
		assert.Equal(t, true, out[0]["is_default"])
	})
}
