package extractor

import "time"

// CBUAEEIBORURL is the Central Bank of the UAE page that publishes EIBOR fixings.
const CBUAEEIBORURL = "https://www.centralbank.ae/en/forex-eibor/eibor-rates/"

const defaultPrompt = "Extract the EIBOR rates from the 'Current month' table. " +
	"Get the latest (most recent) row and the row before it. " +
	"The table columns are: Date, O/N, 1 Week, 1 Month, 3 Months, 6 Months, 1 Year, Value Date."

// DefaultRequest builds the extraction request for the CBUAE current-month table.
func DefaultRequest(sourceURL string, waitFor time.Duration) Request {
	return Request{
		URL:     sourceURL,
		Schema:  eiborSchema(),
		Prompt:  defaultPrompt,
		WaitFor: waitFor,
	}
}

func eiborSchema() map[string]any {
	number := func(desc string) map[string]any {
		return map[string]any{"type": "number", "description": desc}
	}
	text := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"latest_date":       text("The most recent date in the EIBOR rates table (format: DD Month YYYY)"),
			"overnight":         number("The O/N (overnight) EIBOR rate for the latest date"),
			"one_week":          number("The 1 Week EIBOR rate for the latest date"),
			"one_month":         number("The 1 Month EIBOR rate for the latest date"),
			"three_months":      number("The 3 Months EIBOR rate for the latest date"),
			"six_months":        number("The 6 Months EIBOR rate for the latest date"),
			"one_year":          number("The 1 Year EIBOR rate for the latest date"),
			"previous_date":     text("The second most recent date in the current month EIBOR table"),
			"prev_overnight":    number("The O/N rate for the previous date"),
			"prev_one_week":     number("The 1 Week rate for the previous date"),
			"prev_one_month":    number("The 1 Month rate for the previous date"),
			"prev_three_months": number("The 3 Months rate for the previous date"),
			"prev_six_months":   number("The 6 Months rate for the previous date"),
			"prev_one_year":     number("The 1 Year rate for the previous date"),
		},
		"required": []string{"latest_date", "overnight", "one_month", "three_months", "six_months", "one_year"},
	}
}
