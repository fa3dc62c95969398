package viz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adammck/stride/gait"
	"github.com/adammck/stride/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crawl(t *testing.T) *player.Spliner {
	p := gait.DefaultParams()
	p.Steps = 4
	initial := gait.Standing(p)

	s, err := gait.Plan(p, initial)
	require.NoError(t, err)

	sp, err := player.NewSpliner(player.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, sp.Init(initial, s.Segments, s.Footholds, s.Height))
	return sp
}

func countBy(markers []Marker) map[string]int {
	out := map[string]int{}
	for _, m := range markers {
		out[m.NS]++
	}

	return out
}

func TestMarkers(t *testing.T) {
	sp := crawl(t)

	markers, err := Markers(sp, 0.05)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		NSStart:     4,
		NSFootholds: 4,
		NSBody:      1,
		NSSwing:     4,
		NSSupport:   9,
	}, countBy(markers))

	nodes := sp.Nodes()
	for _, m := range markers {
		switch m.NS {
		case NSBody:
			assert.Equal(t, LineStrip, m.Kind)
			assert.Equal(t, nodes[0].State.Base.Pos, m.Points[0])

		case NSSwing:
			// Each swing starts and ends on the ground, and goes above it.
			require.Greater(t, len(m.Points), 2)
			assert.InDelta(t, 0, m.Points[0].Z, 1e-9)
			assert.InDelta(t, 0, m.Points[len(m.Points)-1].Z, 1e-9)

			top := 0.0
			for _, p := range m.Points {
				top = max(top, p.Z)
			}
			assert.Greater(t, top, 0.05)

		case NSSupport:
			assert.Equal(t, Polygon, m.Kind)
			assert.GreaterOrEqual(t, len(m.Points), 3)
		}
	}
}

func TestMarkersErrors(t *testing.T) {
	_, err := Markers(crawl(t), 0)
	assert.True(t, errors.Is(err, ErrInvalidStep))

	sp, err := player.NewSpliner(player.DefaultParams())
	require.NoError(t, err)
	_, err = Markers(sp, 0.1)
	assert.True(t, errors.Is(err, player.ErrNotInitialized))
}

func TestSampleIncludesEnd(t *testing.T) {
	times, err := sampleTimes(1.0, 0.3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.3, 0.6, 0.9, 1.0}, times, 1e-12)

	times, err = sampleTimes(0, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, times)
}

func TestRender(t *testing.T) {
	sp := crawl(t)
	markers, err := Markers(sp, 0.05)
	require.NoError(t, err)

	dir := t.TempDir()
	top := filepath.Join(dir, "out", "top.png")
	heights := filepath.Join(dir, "out", "height.png")

	require.NoError(t, RenderTop(markers, top))
	require.NoError(t, RenderHeights(sp, 0.05, heights))

	for _, path := range []string{top, heights} {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
}
