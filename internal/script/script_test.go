package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solar-roi/internal/capture"
	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/designer"
	"github.com/Faultbox/solar-roi/internal/export"
)

const siteScript = `
name: shed roof
viewport:
  width: 800
  height: 600
steps:
  - begin: true
  - click_at: [145.2678, -36.4369]
  - move_at: [145.2679, -36.4369]
  - click_at: [145.2680, -36.4369]
  - move_at: [145.2680, -36.4368]
  - click_at: [145.2680, -36.4367]
  - configure:
      rows: 3
      columns: 4
      panel_height: 2.5
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(siteScript))
	require.NoError(t, err)

	assert.Equal(t, "shed roof", s.Name)
	require.NotNil(t, s.Viewport)
	assert.Equal(t, 800, s.Viewport.Width)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, "begin", s.Steps[0].Action())
	assert.Equal(t, "click_at", s.Steps[1].Action())
	assert.Equal(t, "move_at", s.Steps[2].Action())
	assert.Equal(t, "configure", s.Steps[6].Action())
	assert.Equal(t, 4, s.Steps[6].Configure.Columns)
}

func TestParseRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty step", "steps:\n  - {}\n"},
		{"two actions", "steps:\n  - begin: true\n    click: [1, 2]\n"},
		{"short pair", "steps:\n  - click: [1]\n"},
		{"long pair", "steps:\n  - move_at: [1, 2, 3]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidStep)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [begin"))
	assert.Error(t, err)
}

func TestLoadDefaultsNameToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roof.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - begin: true\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSessionPlaysGeographicCapture(t *testing.T) {
	s, err := Parse([]byte(siteScript))
	require.NoError(t, err)

	sink := export.NewMemorySink()
	sess := NewSession(config.Default(), s, sink, nil, nil)
	require.NoError(t, sess.Play(s))

	d := sess.Designer
	assert.Equal(t, capture.StateComplete, d.State())
	r, ok := d.Region()
	require.True(t, ok)

	// 0.0002 degrees of longitude at this latitude is about 17.9 m and
	// 0.0002 degrees of latitude about 22.2 m.
	assert.InDelta(t, 17.9, r.Width(), 0.5)
	assert.InDelta(t, 22.2, r.Length(), 0.5)

	arr := d.Array()
	assert.Equal(t, 3, arr.Rows)
	assert.Equal(t, 4, arr.Columns)
	assert.Len(t, d.Cells(), 12)
}

func TestSessionReportsStepErrors(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - begin: true
  - configure:
      rows: 2
      columns: 2
      panel_height: 1
`))
	require.NoError(t, err)

	sess := NewSession(config.Default(), s, export.NewMemorySink(), nil, nil)
	err = sess.Play(s)
	require.ErrorIs(t, err, designer.ErrNoRegion)
	assert.Contains(t, err.Error(), "step 2 (configure)")
}

func TestPlayerNeedsProjectorForGeographicSteps(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - click_at: [145.2678, -36.4369]\n"))
	require.NoError(t, err)

	sess := NewSession(config.Default(), s, export.NewMemorySink(), nil, nil)
	sess.player.Projector = nil
	assert.Error(t, sess.Play(s))
}
