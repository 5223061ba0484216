package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArea struct {
	id     string
	poly   Polygon
	active bool
}

func (a testArea) AreaID() string       { return a.id }
func (a testArea) AreaPolygon() Polygon { return a.poly }
func (a testArea) Active() bool         { return a.active }

func TestFindServiceAreasContaining_OverlapKeepsStorageOrder(t *testing.T) {
	areas := []Area{
		testArea{id: "north", poly: Polygon{{5, 0}, {5, 10}, {15, 10}, {15, 0}}, active: true},
		testArea{id: "far", poly: Polygon{{50, 50}, {50, 60}, {60, 60}}, active: true},
		testArea{id: "base", poly: square(), active: true},
	}

	got := FindServiceAreasContaining(Point{7, 5}, areas, nil)
	assert.Equal(t, []string{"north", "base"}, got)
}

func TestFindServiceAreasContaining_SkipsInactive(t *testing.T) {
	areas := []Area{
		testArea{id: "a", poly: square(), active: false},
		testArea{id: "b", poly: square(), active: true},
	}
	assert.Equal(t, []string{"b"}, FindServiceAreasContaining(Point{5, 5}, areas, nil))

	areas[1] = testArea{id: "b", poly: square(), active: false}
	got := FindServiceAreasContaining(Point{5, 5}, areas, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindServiceAreasContaining_NoMatchIsEmpty(t *testing.T) {
	got := FindServiceAreasContaining(Point{20, 20}, []Area{testArea{id: "a", poly: square(), active: true}}, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.NotNil(t, FindServiceAreasContaining(Point{0, 0}, nil, nil))
}

func TestFindServiceAreasContaining_ReportsMalformed(t *testing.T) {
	areas := []Area{
		testArea{id: "broken", poly: Polygon{{0, 0}, {1, 1}}, active: true},
		testArea{id: "ok", poly: square(), active: true},
	}

	var skipped []string
	got := FindServiceAreasContaining(Point{5, 5}, areas, func(a Area, err error) {
		assert.ErrorIs(t, err, ErrInvalidPolygon)
		skipped = append(skipped, a.AreaID())
	})
	assert.Equal(t, []string{"ok"}, got)
	assert.Equal(t, []string{"broken"}, skipped)
}

func TestDraft(t *testing.T) {
	var d Draft

	_, ok := d.Undo()
	assert.False(t, ok)

	d.Add(Point{0, 0})
	d.Add(Point{0, 4})
	_, err := d.Polygon()
	assert.ErrorIs(t, err, ErrInvalidPolygon)

	d.Add(Point{9, 9})
	last, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, Point{9, 9}, last)

	d.Add(Point{4, 0})
	p, err := d.Polygon()
	require.NoError(t, err)
	assert.Equal(t, Polygon{{0, 0}, {0, 4}, {4, 0}}, p)

	// The returned ring does not alias the draft.
	d.Clear()
	assert.Equal(t, 0, d.Len())
	d.Add(Point{1, 1})
	assert.Equal(t, Point{0, 0}, p[0])
}
