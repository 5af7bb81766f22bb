// Package catalog holds the embedded list of simulator log-setting
// identifiers that logpick presents for selection.
package catalog

import (
	"strings"
)

// settings is the full catalog in display order. The order is part of
// the tool's contract: output is always normalized to this order.
var settings = []string{
	"simulator.state",
	"simulator.random_seed",
	"packet_dropped",
	"no_route",
	"txqueue_full",
	"no_tx_cells",
	"max_retries",
	"reassembly_buffer_full",
	"vrb_table_full",
	"time_exceeded",
	"rank_error",
	"app.tx",
	"app.rx",
	"secjoin.tx",
	"secjoin.rx",
	"secjoin.joined",
	"secjoin.unjoined",
	"secjoin.failed",
	"rpl.dio.tx",
	"rpl.dio.rx",
	"rpl.dao.tx",
	"rpl.dao.rx",
	"rpl.dis.tx",
	"rpl.dis.rx",
	"rpl.churn",
	"rpl.local_repair",
	"sixlowpan.pkt.tx",
	"sixlowpan.pkt.fwd",
	"sixlowpan.pkt.rx",
	"sixlowpan.frag.gen",
	"msf.tx_cell_utilization",
	"msf.rx_cell_utilization",
	"msf.error.schedule_full",
	"sixp.tx",
	"sixp.rx",
	"sixp.comp",
	"sixp.timeout",
	"sixp.abort",
	"tsch.synced",
	"tsch.desynced",
	"tsch.eb.tx",
	"tsch.eb.rx",
	"tsch.add_cell",
	"tsch.delete_cell",
	"tsch.txdone",
	"tsch.rxdone",
	"tsch.be.updated",
	"tsch.add_slotframe",
	"tsch.delete_slotframe",
	"radio.stats",
	"mac.add_addr",
	"ipv6.add_addr",
	"prop.transmission",
	"prop.interference",
	"prop.drop_lockon",
	"conn.matrix.update",
}

// index maps each identifier to its catalog position for fast lookup
var index = func() map[string]int {
	m := make(map[string]int, len(settings))
	for i, name := range settings {
		m[name] = i
	}
	return m
}()

// EngineGroup is the group name reported for identifiers without a dot
// prefix (engine-level events like "packet_dropped").
const EngineGroup = "engine"

// All returns the catalog in embedded order. The returned slice is a
// copy; callers may modify it freely.
func All() []string {
	out := make([]string, len(settings))
	copy(out, settings)
	return out
}

// Len returns the number of identifiers in the catalog.
func Len() int {
	return len(settings)
}

// Contains reports whether name is a known log-setting identifier.
func Contains(name string) bool {
	_, ok := index[name]
	return ok
}

// Index returns the catalog position of name, or -1 if name is not in
// the catalog.
func Index(name string) int {
	i, ok := index[name]
	if !ok {
		return -1
	}
	return i
}

// Group returns the group a catalog identifier belongs to: its first
// dot-separated segment, or EngineGroup for bare identifiers.
func Group(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return EngineGroup
}

// Groups returns the distinct group names in catalog order.
func Groups() []string {
	var groups []string
	seen := map[string]bool{}
	for _, name := range settings {
		g := Group(name)
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// Filter returns the catalog entries containing substr
// (case-insensitive), preserving catalog order. An empty substr
// returns the full catalog.
func Filter(substr string) []string {
	if substr == "" {
		return All()
	}
	needle := strings.ToLower(substr)
	var out []string
	for _, name := range settings {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out
}
