package quote

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pcosta/quotelake/internal/model"
)

// sparkEnvelope is the top-level spark endpoint response.
type sparkEnvelope struct {
	Spark struct {
		Result []sparkResult `json:"result"`
		Error  *sparkAPIErr  `json:"error"`
	} `json:"spark"`
}

type sparkResult struct {
	Symbol   string          `json:"symbol"`
	Response []sparkResponse `json:"response"`
}

type sparkResponse struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"` // null where no trade printed
		} `json:"quote"`
	} `json:"indicators"`
}

type sparkAPIErr struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Fetch issues one batched spark request for the configured trailing window
// and reshapes the response into a wide snapshot. Symbols absent from the
// response contribute no column; the result is never nil but may have zero
// rows. All transport and parse failures return a *FetchError.
func (c *Client) Fetch(ctx context.Context, symbols []string) (*model.RawSnapshot, error) {
	if len(symbols) == 0 {
		return nil, &FetchError{Op: "validate symbols", Err: fmt.Errorf("empty symbol list")}
	}
	for i, sym := range symbols {
		if strings.TrimSpace(sym) == "" {
			return nil, &FetchError{Op: "validate symbols", Err: fmt.Errorf("symbol %d is empty", i)}
		}
	}

	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("range", c.barRange)
	query.Set("interval", c.granularity)

	var envelope sparkEnvelope
	if err := c.get(ctx, "/v7/finance/spark", query, &envelope); err != nil {
		return nil, &FetchError{Op: "spark request", Err: err}
	}

	if apiErr := envelope.Spark.Error; apiErr != nil {
		return nil, &FetchError{
			Op:  "spark request",
			Err: fmt.Errorf("feed rejected request: %s (%s)", apiErr.Description, apiErr.Code),
		}
	}

	snap := c.toSnapshot(symbols, envelope.Spark.Result)

	c.logger.Debug("fetched quotes",
		"requested", len(symbols),
		"returned", snap.Cols(),
		"instants", snap.Rows(),
	)

	return snap, nil
}

// toSnapshot pivots per-symbol series into the wide snapshot: the row index
// is the sorted union of all instants, columns keep the requested order.
func (c *Client) toSnapshot(requested []string, results []sparkResult) *model.RawSnapshot {
	// Per symbol: minute bars keyed by epoch second.
	bySymbol := make(map[string]map[int64]float64, len(results))
	instants := make(map[int64]struct{})

	for _, res := range results {
		closes := make(map[int64]float64)
		for _, resp := range res.Response {
			if len(resp.Indicators.Quote) == 0 {
				continue
			}
			series := resp.Indicators.Quote[0].Close
			for i, ts := range resp.Timestamp {
				if i >= len(series) || series[i] == nil {
					continue
				}
				closes[ts] = *series[i]
				instants[ts] = struct{}{}
			}
		}
		if len(closes) > 0 {
			bySymbol[res.Symbol] = closes
		}
	}

	// Columns: requested order, restricted to symbols the feed returned.
	var cols []string
	for _, sym := range requested {
		if _, ok := bySymbol[sym]; ok {
			cols = append(cols, sym)
		}
	}

	ordered := make([]int64, 0, len(instants))
	for ts := range instants {
		ordered = append(ordered, ts)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	snap := &model.RawSnapshot{
		Timestamps: make([]time.Time, len(ordered)),
		Symbols:    cols,
		Prices:     make([][]float64, len(ordered)),
		Present:    make([][]bool, len(ordered)),
	}

	for i, ts := range ordered {
		snap.Timestamps[i] = time.Unix(ts, 0).In(c.loc)
		snap.Prices[i] = make([]float64, len(cols))
		snap.Present[i] = make([]bool, len(cols))
		for j, sym := range cols {
			if price, ok := bySymbol[sym][ts]; ok {
				snap.Prices[i][j] = price
				snap.Present[i][j] = true
			}
		}
	}

	return snap
}
