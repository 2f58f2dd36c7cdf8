package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points the file backend at the shared sky fixture.
func writeConfig(t *testing.T) string {
	t.Helper()
	fixture, err := filepath.Abs("../../services/ephemeris/testdata/sky.yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "ephemeris:\n  backend: file\n  fixture: " + fixture + "\nmetrics:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", writeConfig(t)))
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return res, nil
}

func TestSkyAtFixtureEpoch(t *testing.T) {
	res, err := run(t, "sky", "--at", "2024-03-20T12:00")
	require.NoError(t, err)
	assert.Equal(t, "20/03/2024", res["data"])
	assert.Equal(t, "12:00", res["ora_utc"])

	bodies := res["pianeti"].(map[string]interface{})
	sun := bodies["sole"].(map[string]interface{})
	assert.Equal(t, "Ariete", sun["segno"])
}

func TestSkyRejectsBadMoment(t *testing.T) {
	_, err := run(t, "sky", "--at", "yesterday")
	assert.ErrorContains(t, err, "invalid --at")
}

func TestNatalUsesFlags(t *testing.T) {
	res, err := run(t, "natal", "--date", "2024-03-20", "--time", "12:00", "--lat", "45.46", "--lon", "9.19")
	require.NoError(t, err)
	assert.Equal(t, 45.46, res["latitudine"])
	assert.Equal(t, 9.19, res["longitudine"])
	assert.Contains(t, res, "pianeti")
}

func TestNatalFlagErrors(t *testing.T) {
	_, err := run(t, "natal")
	assert.ErrorContains(t, err, "--date is required")

	_, err = run(t, "natal", "--date", "2024-02-30")
	assert.ErrorContains(t, err, "invalid --date")

	_, err = run(t, "natal", "--date", "2024-03-20", "--lat", "91")
	assert.ErrorContains(t, err, "--lat out of range")
}

func TestSolarReturn(t *testing.T) {
	res, err := run(t, "solar-return", "--date", "2024-03-20", "--year", "2025")
	require.NoError(t, err)
	assert.Equal(t, float64(2025), res["anno"])
	assert.Contains(t, res, "momento_ritorno")
}

func TestVersionSkipsInit(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand("1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--config", "does-not-exist.yaml"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "astroctl 1.2.3\n", out.String())
}
