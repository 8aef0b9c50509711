package storage

import (
	"fmt"
	"time"
)

// Episode is one training episode of an agent run.
type Episode struct {
	ID        int64
	RunID     string
	Episode   int // 1-based within the run
	Score     int
	Steps     int
	Reward    float64
	Reason    string
	Truncated bool // Ended by the stall limit rather than a collision
	Epsilon   float64
	CreatedAt time.Time
}

// RunSummary aggregates the episodes of one run.
type RunSummary struct {
	RunID     string
	Episodes  int
	BestScore int
	AvgScore  float64
	AvgReward float64
	StartedAt time.Time
}

// SaveEpisode records a finished training episode.
func (s *Store) SaveEpisode(e Episode) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO episodes (run_id, episode, score, steps, reward, reason, truncated, epsilon)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Episode, e.Score, e.Steps, e.Reward, e.Reason, e.Truncated, e.Epsilon,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RunEpisodes returns every episode of a run in order.
func (s *Store) RunEpisodes(runID string) ([]Episode, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, episode, score, steps, reward, reason, truncated, epsilon, created_at
		 FROM episodes
		 WHERE run_id = ?
		 ORDER BY episode ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Episode, &e.Score, &e.Steps, &e.Reward,
			&e.Reason, &e.Truncated, &e.Epsilon, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return episodes, nil
}

// RecentRuns summarises the most recently started runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, COUNT(*), MAX(score), AVG(score), AVG(reward), MIN(created_at)
		 FROM episodes
		 GROUP BY run_id
		 ORDER BY MIN(id) DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var startedAt any
		if err := rows.Scan(&r.RunID, &r.Episodes, &r.BestScore, &r.AvgScore, &r.AvgReward, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
