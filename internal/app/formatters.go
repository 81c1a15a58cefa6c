package app

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/augur/internal/models"
)

// formatPrediction formats a prediction as markdown
func formatPrediction(p *models.StockPrediction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Forecast: %s\n\n", p.Symbol))
	sb.WriteString("30 trading days ahead, fitted on the last 6 months of daily closes.\n\n")

	// Summary Table
	sb.WriteString("| Model | RMSE | Day 1 | Day 10 | Day 30 |\n")
	sb.WriteString("|-------|------|-------|--------|--------|\n")
	rows := []struct {
		name     string
		rmse     float64
		forecast []float64
	}{
		{"MA", p.RMSE.MA, p.MAPrediction},
		{"ARMA", p.RMSE.ARMA, p.ARMAPrediction},
		{"ARIMA", p.RMSE.ARIMA, p.ARIMAPrediction},
	}
	for _, row := range rows {
		if len(row.forecast) < 30 {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %.4f | %.2f | %.2f | %.2f |\n",
			row.name, row.rmse, row.forecast[0], row.forecast[9], row.forecast[29]))
	}

	// Full ARIMA track
	if len(p.ARIMAPrediction) > 0 {
		sb.WriteString("\n## ARIMA Daily Path\n\n")
		values := make([]string, len(p.ARIMAPrediction))
		for i, v := range p.ARIMAPrediction {
			values[i] = fmt.Sprintf("%.2f", v)
		}
		sb.WriteString(strings.Join(values, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString("\nLower RMSE means a better fit on the held-out window.\n")

	return sb.String()
}

// formatQuote formats a realtime quote as markdown
func formatQuote(q *models.RealTimeQuote) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Quote: %s\n\n", q.Symbol))
	sb.WriteString(fmt.Sprintf("**Current:** %.2f\n", q.Current))
	sb.WriteString(fmt.Sprintf("**Open:** %.2f\n", q.Open))
	sb.WriteString(fmt.Sprintf("**High:** %.2f\n", q.High))
	sb.WriteString(fmt.Sprintf("**Low:** %.2f\n", q.Low))
	sb.WriteString(fmt.Sprintf("**As Of:** %s (exchange local)\n", q.Timestamp))
	sb.WriteString(fmt.Sprintf("**Source:** %s\n", q.Source))

	return sb.String()
}

// formatMatches formats autocomplete matches as a markdown table
func formatMatches(query string, matches []models.SymbolMatch) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No tickers found for '%s'.", query)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Tickers matching '%s'\n\n", query))
	sb.WriteString("| Symbol | Name | Exchange |\n")
	sb.WriteString("|--------|------|----------|\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", m.Symbol, m.Name, m.Exchange))
	}
	sb.WriteString(fmt.Sprintf("\n%d match(es).\n", len(matches)))

	return sb.String()
}
