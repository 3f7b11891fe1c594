package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aellis6/base-reports/internal/types"
)

// TransferCall is one unique call that hopped two or more queues.
type TransferCall struct {
	CallID           string  `json:"callId"`
	TotalCallMinutes float64 `json:"totalCallMinutes"`
	HoldMinutes      float64 `json:"holdMinutes"`
	Hops             int     `json:"hops"`
	QueuesTraversed  string  `json:"queuesTraversed"`
	DayOfWeek        string  `json:"dayOfWeek"`
	CallTime         string  `json:"callTime"` // HH:MM:SS of the first leg
}

// TransferGroupStats summarizes one side of the transfer partition.
type TransferGroupStats struct {
	Calls               int     `json:"calls"`
	TotalHoldMinutes    float64 `json:"totalHoldMinutes"`
	AvgHoldMinutes      float64 `json:"avgHoldMinutes"`
	AvgTotalCallMinutes float64 `json:"avgTotalCallMinutes"`
}

// TransferReport partitions unique calls by how many queue hops they
// made. Multi covers calls with two or more hops, Few the rest; the
// partitions are disjoint and together cover every unique call id.
type TransferReport struct {
	Multi        TransferGroupStats `json:"multi"`
	Few          TransferGroupStats `json:"few"`
	Distribution []GroupCount       `json:"distribution"` // hop count -> unique calls
	Details      []TransferCall     `json:"details"`      // multi-hop calls only
}

// aggregatedCall is the per-Call-ID rollup across queue legs.
type aggregatedCall struct {
	callID    string
	hold      float64
	talk      float64
	hops      int
	traversed []string
	start     time.Time
}

// hopCount counts the queue entries of a Traversed log, excluding any
// entry mentioning 999, and converts stops to hops: a call that only
// ever sat in one queue made zero hops.
func hopCount(traversed string) int {
	if !strings.Contains(strings.ToLower(traversed), "queue") {
		return 0
	}
	n := 0
	for _, entry := range strings.Split(traversed, ";") {
		low := strings.ToLower(entry)
		if strings.Contains(low, "queue") && !strings.Contains(entry, "999") {
			n++
		}
	}
	if n > 1 {
		return n - 1
	}
	return 0
}

// queuesTraversed renders the queue entries of a Traversed log for
// display, excluding 999 entries.
func queuesTraversed(traversed string) string {
	if !strings.Contains(strings.ToLower(traversed), "queue") {
		return ""
	}
	var entries []string
	for _, entry := range strings.Split(traversed, ";") {
		entry = strings.TrimSpace(entry)
		low := strings.ToLower(entry)
		if entry != "" && strings.Contains(low, "queue") && !strings.Contains(entry, "999") {
			entries = append(entries, entry)
		}
	}
	return strings.Join(entries, ", ")
}

// AnalyzeTransfers rolls the subset up to unique Call IDs (summing hold
// and talk across legs, keeping the worst hop count and earliest start)
// and partitions the calls by hop count.
func AnalyzeTransfers(subset []types.CallRecord) TransferReport {
	byID := make(map[string]*aggregatedCall)
	var order []string
	for _, rec := range subset {
		agg, ok := byID[rec.CallID]
		if !ok {
			agg = &aggregatedCall{callID: rec.CallID, start: rec.StartTime}
			byID[rec.CallID] = agg
			order = append(order, rec.CallID)
		}
		agg.hold += rec.HoldTime
		agg.talk += rec.TalkDuration
		if h := hopCount(rec.Traversed); h > agg.hops {
			agg.hops = h
		}
		if rec.Traversed != "" {
			agg.traversed = append(agg.traversed, rec.Traversed)
		}
		if rec.StartTime.Before(agg.start) {
			agg.start = rec.StartTime
		}
	}
	sort.Strings(order)

	var rep TransferReport
	dist := make(map[string]int)
	var multiHold, multiTotal, fewHold, fewTotal float64

	for _, id := range order {
		agg := byID[id]
		dist[strconv.Itoa(agg.hops)]++
		total := agg.hold + agg.talk

		if agg.hops >= 2 {
			rep.Multi.Calls++
			multiHold += agg.hold
			multiTotal += total
			rep.Details = append(rep.Details, TransferCall{
				CallID:           agg.callID,
				TotalCallMinutes: round2(total / 60),
				HoldMinutes:      round2(agg.hold / 60),
				Hops:             agg.hops,
				QueuesTraversed:  queuesTraversed(strings.Join(agg.traversed, ";")),
				DayOfWeek:        agg.start.Weekday().String(),
				CallTime:         agg.start.Format("15:04:05"),
			})
		} else {
			rep.Few.Calls++
			fewHold += agg.hold
			fewTotal += total
		}
	}

	rep.Multi.TotalHoldMinutes = round2(multiHold / 60)
	rep.Few.TotalHoldMinutes = round2(fewHold / 60)
	if rep.Multi.Calls > 0 {
		rep.Multi.AvgHoldMinutes = round2(multiHold / 60 / float64(rep.Multi.Calls))
		rep.Multi.AvgTotalCallMinutes = round2(multiTotal / 60 / float64(rep.Multi.Calls))
	}
	if rep.Few.Calls > 0 {
		rep.Few.AvgHoldMinutes = round2(fewHold / 60 / float64(rep.Few.Calls))
		rep.Few.AvgTotalCallMinutes = round2(fewTotal / 60 / float64(rep.Few.Calls))
	}

	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	for _, k := range keys {
		rep.Distribution = append(rep.Distribution, GroupCount{Key: k, Count: dist[k]})
	}
	return rep
}
