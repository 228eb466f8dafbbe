package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
)

func TestParse_EndToEnd(t *testing.T) {
	log := diaglog.New()
	table, err := Parse(kudaGrid(), log)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	md := table.Metadata
	require.NotNil(t, md.AccountNumber)
	assert.Equal(t, "1100050449", *md.AccountNumber)
	require.NotNil(t, md.ClosingBalance)
	assert.Equal(t, "₦1,000.00", *md.ClosingBalance)
	require.NotNil(t, md.SummaryMoneyIn)
	assert.Equal(t, "₦1,500.00", *md.SummaryMoneyIn)
	require.NotNil(t, md.SummaryMoneyOut)
	assert.Equal(t, "₦500.00", *md.SummaryMoneyOut)

	first := table.Rows[0]
	require.NotNil(t, first.DateTime)
	assert.Equal(t, at(2020, 1, 10, 21, 12, 38), *first.DateTime)
	assert.True(t, dec("1500").Equal(first.MoneyIn))
	assert.True(t, first.MoneyOut.IsZero())
	assert.Equal(t, "inward transfer", first.Category)
	assert.Equal(t, "Ada Obi", first.Counterparty)
	assert.Equal(t, "kip:zenith/ada", first.Description)
	assert.True(t, dec("1500").Equal(first.Balance))

	assert.True(t, dec("300").Equal(table.Rows[1].MoneyOut))
	assert.Equal(t, model.DefaultCategory, table.Rows[2].Category)
	assert.Nil(t, table.Rows[3].DateTime)

	assert.Len(t, log.Find(diaglog.StageHeader, "matched"), 1)
	assert.NotEmpty(t, log.Find(diaglog.StageMetadata, "account_number"))
}

func TestParse_TypedCells(t *testing.T) {
	g := kudaGrid()
	g[16][2] = at(2020, 2, 3, 9, 22, 35)
	g[17][2] = at(2020, 1, 16, 9, 22, 35)
	g[17][8] = -1234.5

	log := diaglog.New()
	table, err := Parse(g, log)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	require.NotNil(t, table.Rows[0].DateTime)
	assert.Equal(t, at(2020, 2, 3, 9, 22, 35), *table.Rows[0].DateTime)
	require.NotNil(t, table.Rows[1].DateTime)
	assert.Equal(t, at(2020, 1, 16, 9, 22, 35), *table.Rows[1].DateTime)
	assert.True(t, dec("-1234.5").Equal(table.Rows[1].Balance), "got %s", table.Rows[1].Balance)
}

func TestParse_ThenFilterSavings(t *testing.T) {
	table, err := Parse(kudaGrid(), nil)
	require.NoError(t, err)
	filtered := FilterOutSavings(table, "")
	assert.Equal(t, 3, filtered.Len())
	assert.Equal(t, []string{"kip:zenith/ada", "groceries", "airtime"}, descriptions(filtered))
}

func TestParse_DoesNotModifyGrid(t *testing.T) {
	g := kudaGrid()
	_, err := Parse(g, nil)
	require.NoError(t, err)
	assert.Equal(t, kudaGrid(), g)
}

func TestParse_Repeatable(t *testing.T) {
	a, err := Parse(kudaGrid(), diaglog.New())
	require.NoError(t, err)
	b, err := Parse(kudaGrid(), diaglog.New())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParse_SynthesizesMissingColumns(t *testing.T) {
	g := model.RawGrid{
		{"Date/Time", "Money In", "Description"},
		{"15/01/2020", "₦10.00", "gift"},
	}
	log := diaglog.New()
	table, err := Parse(g, log)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	tx := table.Rows[0]
	assert.True(t, dec("10").Equal(tx.MoneyIn))
	assert.True(t, tx.MoneyOut.IsZero())
	assert.True(t, tx.Balance.IsZero())
	assert.Equal(t, "", tx.Counterparty)
	assert.Equal(t, model.DefaultCategory, tx.Category)
	assert.Nil(t, tx.Raw[model.ColBalance])
	assert.Len(t, log.Find(diaglog.StageBuild, "synthesized"), 4)
	assert.True(t, table.Metadata.Empty())
}

func TestParse_HeaderNotFound(t *testing.T) {
	table, err := Parse(model.RawGrid{{"nothing", "here"}}, nil)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrHeaderNotFound))
}

func TestParsePlain(t *testing.T) {
	g := model.RawGrid{
		canonicalHeader,
		{"15/01/2020", "₦10.00", nil, "gift", "Mum", "birthday", "₦10.00"},
		{"16/01/2020", nil, "₦4.00", nil, "MTN", "airtime", "₦6.00"},
	}
	table, err := ParsePlain(g, nil)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.True(t, dec("4").Equal(table.Rows[1].MoneyOut))
	assert.Equal(t, model.DefaultCategory, table.Rows[1].Category)
	require.NotNil(t, table.Rows[0].DateTime)
	assert.Equal(t, at(2020, 1, 15, 0, 0, 0), *table.Rows[0].DateTime)
}

func TestParsePlain_MissingColumns(t *testing.T) {
	g := model.RawGrid{{"Date/Time", "Money In", "Notes"}}
	_, err := ParsePlain(g, nil)
	require.ErrorIs(t, err, ErrMissingColumns)

	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []model.Column{
		model.ColMoneyOut, model.ColCategory, model.ColCounterparty, model.ColDescription, model.ColBalance,
	}, mce.Missing)
	assert.Equal(t, []string{"Date/Time", "Money In", "Notes"}, mce.Found)
	assert.Contains(t, err.Error(), "Money out, Category")
}

func TestExpectedSample(t *testing.T) {
	for _, row := range ExpectedSample() {
		assert.Len(t, row, len(ExpectedHeaders()))
	}
	assert.Equal(t, "To / From", ExpectedHeaders()[4])
}
