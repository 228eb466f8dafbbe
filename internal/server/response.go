package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/model"
	"github.com/kudastat/kudastat/internal/report"
	"github.com/kudastat/kudastat/internal/statement"
)

type accountInfo struct {
	AccountNumber   *string `json:"account_number"`
	ClosingBalance  *string `json:"closing_balance"`
	SummaryMoneyIn  *string `json:"summary_money_in"`
	SummaryMoneyOut *string `json:"summary_money_out"`
}

type transactionJSON struct {
	DateTime     *time.Time      `json:"date_time"`
	MoneyIn      decimal.Decimal `json:"money_in"`
	MoneyOut     decimal.Decimal `json:"money_out"`
	Category     string          `json:"category"`
	Counterparty string          `json:"counterparty"`
	Description  string          `json:"description"`
	Balance      decimal.Decimal `json:"balance"`
}

type formattedMetrics struct {
	TotalIn        string `json:"total_in"`
	TotalOut       string `json:"total_out"`
	Net            string `json:"net"`
	NetPercent     string `json:"net_percent"`
	CurrentBalance string `json:"current_balance"`
}

type analysisResponse struct {
	Account             accountInfo      `json:"account"`
	Plain               bool             `json:"plain"`
	AvailableCategories []string         `json:"available_categories"`
	Formatted           formattedMetrics `json:"formatted"`
	report.Summary
	Transactions []transactionJSON `json:"transactions"`
	Diagnostics  []string          `json:"diagnostics"`
}

type expectedFormat struct {
	Headers []string   `json:"headers"`
	Sample  [][]string `json:"sample"`
}

type headerNotFoundResponse struct {
	Error       string         `json:"error"`
	Rows        []string       `json:"rows"`
	Expected    expectedFormat `json:"expected"`
	Diagnostics []string       `json:"diagnostics"`
}

func newAnalysisResponse(res *analysis.Result, log *diaglog.Log, symbol string) analysisResponse {
	md := res.Summary.Account
	m := res.Summary.Metrics
	return analysisResponse{
		Account: accountInfo{
			AccountNumber:   md.AccountNumber,
			ClosingBalance:  md.ClosingBalance,
			SummaryMoneyIn:  md.SummaryMoneyIn,
			SummaryMoneyOut: md.SummaryMoneyOut,
		},
		Plain:               res.Plain,
		AvailableCategories: res.Categories,
		Formatted: formattedMetrics{
			TotalIn:        report.FormatAmount(m.TotalIn, symbol),
			TotalOut:       report.FormatAmount(m.TotalOut, symbol),
			Net:            report.FormatAmount(m.Net, symbol),
			NetPercent:     report.FormatPercent(m.NetPercent),
			CurrentBalance: report.FormatAmount(m.CurrentBalance, symbol),
		},
		Summary:      res.Summary,
		Transactions: transactions(res.Table),
		Diagnostics:  diagnostics(log),
	}
}

func newHeaderNotFoundResponse(err error, hnf *statement.HeaderNotFoundError, log *diaglog.Log) headerNotFoundResponse {
	return headerNotFoundResponse{
		Error: err.Error(),
		Rows:  hnf.Rows,
		Expected: expectedFormat{
			Headers: statement.ExpectedHeaders(),
			Sample:  statement.ExpectedSample(),
		},
		Diagnostics: diagnostics(log),
	}
}

func transactions(t *model.StatementTable) []transactionJSON {
	out := make([]transactionJSON, len(t.Rows))
	for i, tx := range t.Rows {
		out[i] = transactionJSON{
			DateTime:     tx.DateTime,
			MoneyIn:      tx.MoneyIn,
			MoneyOut:     tx.MoneyOut,
			Category:     tx.Category,
			Counterparty: tx.Counterparty,
			Description:  tx.Description,
			Balance:      tx.Balance,
		}
	}
	return out
}

func diagnostics(log *diaglog.Log) []string {
	entries := log.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
