package autopilot

import (
	"fmt"
	"sort"
	"strings"
)

const maxRecords = 10

// Record captures one decision.
type Record struct {
	Tick      int    `json:"tick"`
	Action    string `json:"action"`
	Level     string `json:"level"`
	Rationale string `json:"rationale,omitempty"`
}

// Memory keeps the most recent decisions and a tally of every input sent.
type Memory struct {
	Records []Record       `json:"records"`
	Counts  map[string]int `json:"counts"`
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{Counts: make(map[string]int)}
}

// Record adds a decision, trimming to maxRecords.
func (m *Memory) Record(r Record) {
	m.Counts[r.Action]++
	m.Records = append(m.Records, r)
	if len(m.Records) > maxRecords {
		m.Records = m.Records[len(m.Records)-maxRecords:]
	}
}

// Last returns the most recent decision, if any.
func (m *Memory) Last() (Record, bool) {
	if len(m.Records) == 0 {
		return Record{}, false
	}
	return m.Records[len(m.Records)-1], true
}

// Top returns the n most frequent inputs as "name×count", most frequent
// first.
func (m *Memory) Top(n int) []string {
	names := make([]string, 0, len(m.Counts))
	for k := range m.Counts {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if m.Counts[names[i]] != m.Counts[names[j]] {
			return m.Counts[names[i]] > m.Counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	out := make([]string, len(names))
	for i, k := range names {
		out[i] = fmt.Sprintf("%s×%d", k, m.Counts[k])
	}
	return out
}

// Format summarizes the recent decisions for a log line or report.
func (m *Memory) Format() string {
	if len(m.Records) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range m.Records {
		fmt.Fprintf(&b, "- t=%d %s [%s]", r.Tick, r.Action, r.Level)
		if r.Rationale != "" {
			fmt.Fprintf(&b, ": %s", r.Rationale)
		}
		b.WriteString("\n")
	}
	return b.String()
}
