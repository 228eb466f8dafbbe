package statement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kudastat/kudastat/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		cell model.Cell
		want Kind
	}{
		{nil, KindEmpty},
		{"   ", KindEmpty},
		{"nan", KindEmpty},
		{math.NaN(), KindEmpty},
		{"Date/Time", KindHeader},
		{"Closing Balance", KindHeader},
		{"16/01/20 09:22:35", KindDate},
		{at(2020, 2, 3, 9, 22, 35), KindDate},
		{"₦1,234.56", KindMoney},
		{"1,234.56", KindMoney},
		{int64(42), KindMoney},
		{12.5, KindMoney},
		{"kip:zenith/ada", KindText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.cell), "cell %#v", tt.cell)
	}
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "1100050449", CellText(int64(1100050449)))
	assert.Equal(t, "200.5", CellText(200.5))
	assert.Equal(t, " x ", CellText(" x "))
	assert.Equal(t, "2020-02-03 09:22:35", CellText(at(2020, 2, 3, 9, 22, 35)))
}

func TestLooksLikeMoney(t *testing.T) {
	assert.True(t, LooksLikeMoney("$10"))
	assert.True(t, LooksLikeMoney("€10"))
	assert.True(t, LooksLikeMoney("10.00"))
	assert.False(t, LooksLikeMoney("ten"))
	assert.False(t, LooksLikeMoney(""))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "money", KindMoney.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestDescribeRow(t *testing.T) {
	s, ok := describeRow(3, []model.Cell{nil, "Account", int64(7)})
	assert.True(t, ok)
	assert.Equal(t, `Row 3 (non-empty cells: 2): ["Account", "7"]`, s)

	_, ok = describeRow(0, []model.Cell{nil, " "})
	assert.False(t, ok)
}
