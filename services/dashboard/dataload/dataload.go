// Package dataload fetches the data files behind a page's active
// slots and prepares them for a single synchronized render pass.
package dataload

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// TimestampLayout is the fixed timestamp format of the aggregated
// data files.
const TimestampLayout = "2006-01-02 15:04:05"

// DateField is the timestamp column name in the data files.
const DateField = "timestamp"

// ErrStaleCycle reports a load whose cycle was superseded by a newer
// navigation before it completed. The caller abandons the cycle; its
// results must never reach the page.
var ErrStaleCycle = errors.New("load cycle superseded")

// ActiveSlot is one slot resolved to a concrete data URL.
type ActiveSlot struct {
	SlotID int
	URL    string
}

// Row is a normalized data point. Value is NaN when the source field
// could not be coerced to a number.
type Row struct {
	Timestamp time.Time
	Value     float64
}

// MarshalJSON writes the timestamp in the source layout and NaN
// values as null, so rows can be embedded for the chart renderer.
func (r Row) MarshalJSON() ([]byte, error) {
	value := "null"
	if !math.IsNaN(r.Value) {
		value = strconv.FormatFloat(r.Value, 'g', -1, 64)
	}
	return []byte(fmt.Sprintf("{\"timestamp\":%q,\"value\":%s}", r.Timestamp.Format(TimestampLayout), value)), nil
}

// Series is one slot's loaded rows plus the value domain shared by
// every slot of the cycle.
type Series struct {
	SlotID int
	Rows   []Row
	Domain [2]float64
}

// Coordinator fetches all active slots of a render cycle concurrently
// and joins the results. Each cycle gets a monotonically increasing
// id; a cycle that is no longer the newest when its join completes is
// discarded.
type Coordinator struct {
	client *http.Client
	cycle  atomic.Uint64
}

// New creates a Coordinator using the given client. The client should
// carry a bounded timeout; a slot fetch that never settles would hold
// up the whole cycle.
func New(client *http.Client) *Coordinator {
	return &Coordinator{client: client}
}

// Load fetches every active slot concurrently and waits for all of
// them to settle. Any fetch failure fails the whole batch; no partial
// result is returned. On success every series shares the same
// [0, max] domain, computed across all slots' values. An empty slot
// list resolves immediately without network calls.
func (c *Coordinator) Load(ctx context.Context, slots []ActiveSlot, valueField string) ([]Series, error) {
	id := c.cycle.Add(1)

	if len(slots) == 0 {
		return []Series{}, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		results = make([][]Row, len(slots))
	)

	for i, slot := range slots {
		wg.Add(1)
		go func(i int, slot ActiveSlot) {
			defer wg.Done()
			rows, err := c.fetchRows(ctx, slot.URL, valueField)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("slot %d: %w", slot.SlotID, err))
				return
			}
			results[i] = rows
		}(i, slot)
	}

	// The join waits for every outstanding fetch, success or not, so a
	// chart is never rendered next to a still-pending one.
	wg.Wait()

	if c.cycle.Load() != id {
		return nil, ErrStaleCycle
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sharedMax := 0.0
	for _, rows := range results {
		for _, row := range rows {
			if row.Value > sharedMax {
				sharedMax = row.Value
			}
		}
	}
	domain := [2]float64{0, sharedMax}

	series := make([]Series, len(slots))
	for i, slot := range slots {
		series[i] = Series{SlotID: slot.SlotID, Rows: results[i], Domain: domain}
	}
	return series, nil
}

func (c *Coordinator) fetchRows(ctx context.Context, url, valueField string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request data file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("data file: unexpected status %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("data file has no header row")
	}

	dateCol, valueCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case DateField:
			dateCol = i
		case valueField:
			valueCol = i
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("data file has no %q column", DateField)
	}
	if valueCol < 0 {
		return nil, fmt.Errorf("data file has no %q column", valueField)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		ts, err := time.Parse(TimestampLayout, record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", record[dateCol], err)
		}
		// A value that fails coercion keeps its row, as NaN.
		value, err := strconv.ParseFloat(record[valueCol], 64)
		if err != nil {
			value = math.NaN()
		}
		rows = append(rows, Row{Timestamp: ts, Value: value})
	}
	return rows, nil
}
