package store

import "fmt"

// UnitStats summarizes the shape of one stored translation unit.
type UnitStats struct {
	Unit       string      `json:"unit"`
	NodeCount  int         `json:"node_count"`
	KindCounts []KindCount `json:"kind_counts"`
	Files      []string    `json:"files"`
}

// KindCount is a node kind with its count.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// GetStats returns node statistics for a stored unit.
func (s *Store) GetStats(unit string) (*UnitStats, error) {
	if _, err := s.GetUnit(unit); err != nil {
		return nil, err
	}
	stats := &UnitStats{Unit: unit}

	rows, err := s.q.Query(
		"SELECT kind, COUNT(*) as cnt FROM nodes WHERE unit=? GROUP BY kind ORDER BY cnt DESC, kind", unit)
	if err != nil {
		return nil, fmt.Errorf("stats kinds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, err
		}
		stats.KindCounts = append(stats.KindCounts, kc)
		stats.NodeCount += kc.Count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	files, err := s.q.Query(
		"SELECT DISTINCT file FROM nodes WHERE unit=? AND file != '' ORDER BY file", unit)
	if err != nil {
		return nil, fmt.Errorf("stats files: %w", err)
	}
	defer files.Close()
	for files.Next() {
		var f string
		if err := files.Scan(&f); err != nil {
			return nil, err
		}
		stats.Files = append(stats.Files, f)
	}
	return stats, files.Err()
}
