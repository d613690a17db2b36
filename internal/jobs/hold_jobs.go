package jobs

import (
	"context"

	"winetour-backend/internal/logger"
)

// ReleaseExpiredHolds releases ACTIVE hold blocks whose expiry has passed,
// returning the held vehicle slots to the availability pool
func (jr *JobRunner) ReleaseExpiredHolds() {
	jr.runWithRecovery("ReleaseExpiredHolds", func() {
		ctx := context.Background()

		query := `
			UPDATE hold_blocks
			SET status = 'RELEASED'
			WHERE status = 'ACTIVE'
			  AND expires_at < NOW()
			RETURNING id, resource_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to release expired holds", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				holdID     int
				resourceID int
				tourDate   string
				startTime  string
				endTime    string
			)
			if err := rows.Scan(&holdID, &resourceID, &tourDate, &startTime, &endTime); err != nil {
				logger.Error("Failed to scan released hold", "error", err)
				continue
			}
			count++
			logger.Debug("Released expired hold",
				"hold_id", holdID,
				"resource_id", resourceID,
				"tour_date", tourDate,
				"start_time", startTime,
				"end_time", endTime)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating released holds", "error", err)
			return
		}

		logger.Info("Released expired holds", "count", count)
	})
}
