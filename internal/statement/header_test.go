package statement

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

func TestLocateHeader_Positional(t *testing.T) {
	g := blankGrid(18)
	// an earlier exact match must not win over the conventional position
	g[4] = []model.Cell{"Date/Time", "Money In"}
	g[15] = padRow(2, "DATE/TIME")

	log := diaglog.New()
	idx, err := LocateHeader(g, log)
	require.NoError(t, err)
	assert.Equal(t, 15, idx)

	matched := log.Find(diaglog.StageHeader, "matched")
	require.Len(t, matched, 1)
	assert.Equal(t, "strategy=positional", matched[0].Details)
	assert.Equal(t, 15, matched[0].Row)
}

func TestLocateHeader_PositionalIgnoresOtherContent(t *testing.T) {
	g := kudaGrid()
	g[2] = []model.Cell{"date", "money", "time", "balance"}
	idx, err := LocateHeader(g, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, idx)
}

func TestLocateHeader_Exact(t *testing.T) {
	g := blankGrid(10)
	g[1] = []model.Cell{"Statement period"}
	g[6] = []model.Cell{nil, " date/time ", "Money In"}

	log := diaglog.New()
	idx, err := LocateHeader(g, log)
	require.NoError(t, err)
	assert.Equal(t, 6, idx)
	assert.Len(t, log.Find(diaglog.StageHeader, "no_match"), 1)
}

func TestLocateHeader_ExactWhenRow15Differs(t *testing.T) {
	g := blankGrid(20)
	g[15] = padRow(2, "Something else")
	g[17] = padRow(0, "Date/Time")

	idx, err := LocateHeader(g, nil)
	require.NoError(t, err)
	assert.Equal(t, 17, idx)
}

func TestLocateHeader_CoOccurrence(t *testing.T) {
	g := blankGrid(6)
	g[1] = []model.Cell{"Transaction Date", "Narration"}
	g[3] = []model.Cell{"Transaction Date", "Narration", "Money Received"}

	log := diaglog.New()
	idx, err := LocateHeader(g, log)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.Equal(t, "strategy=co-occurrence", log.Find(diaglog.StageHeader, "matched")[0].Details)
}

func TestLocateHeader_Loose(t *testing.T) {
	g := blankGrid(6)
	g[2] = []model.Cell{"Time", "Details", "Balance"}

	log := diaglog.New()
	idx, err := LocateHeader(g, log)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "strategy=loose", log.Find(diaglog.StageHeader, "matched")[0].Details)
}

func TestLocateHeader_NotFound(t *testing.T) {
	g := model.RawGrid{
		{"hello", nil, "world"},
		{},
		{"just", "text"},
	}

	log := diaglog.New()
	idx, err := LocateHeader(g, log)
	assert.Equal(t, -1, idx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderNotFound))

	var hnf *HeaderNotFoundError
	require.True(t, errors.As(err, &hnf))
	assert.Equal(t, []string{
		`Row 0 (non-empty cells: 2): ["hello", "world"]`,
		`Row 2 (non-empty cells: 2): ["just", "text"]`,
	}, hnf.Rows)
	assert.Len(t, log.Find(diaglog.StageHeader, "no_match"), len(headerStrategies))
	assert.Len(t, log.Find(diaglog.StageHeader, "dump"), 2)
}

func TestLocateHeader_EmptyGrid(t *testing.T) {
	_, err := LocateHeader(nil, nil)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestLocateHeader_DumpIsBounded(t *testing.T) {
	g := make(model.RawGrid, 50)
	for i := range g {
		g[i] = []model.Cell{fmt.Sprintf("line %d", i)}
	}
	_, err := LocateHeader(g, nil)
	var hnf *HeaderNotFoundError
	require.ErrorAs(t, err, &hnf)
	assert.Len(t, hnf.Rows, dumpRowLimit)
}
