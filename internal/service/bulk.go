package service

import "errors"

// BulkReport aggregates the outcome of a sequential batch run.
type BulkReport struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// BulkProgress is emitted after every item so callers can drive a live
// current/total indicator.
type BulkProgress struct {
	Current int
	Total   int
	Err     error
}

// RunBulk executes op over items strictly one at a time, in the order
// supplied. A failing item is counted and the loop continues; items are
// never retried and a started run is never cancelled mid-batch.
func RunBulk[T any](items []T, op func(T) error, onProgress func(BulkProgress)) BulkReport {
	report := BulkReport{Total: len(items)}
	for i, item := range items {
		err := op(item)
		if err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
		if onProgress != nil {
			onProgress(BulkProgress{Current: i + 1, Total: report.Total, Err: err})
		}
	}
	return report
}

// BulkSoftDelete trashes each id in turn. A record that is already in
// the trash counts as a no-op success; the single-item primitive still
// reports it so other callers can decide differently.
func BulkSoftDelete(kind string, userID uint64, ids []uint64, onProgress func(BulkProgress)) BulkReport {
	return RunBulk(ids, func(id uint64) error {
		_, err := SoftDeleteOwner(kind, userID, id)
		if errors.Is(err, ErrAlreadyDeleted) {
			return nil
		}
		return err
	}, onProgress)
}

// BulkRestore restores each id in turn.
func BulkRestore(kind string, userID uint64, ids []uint64, onProgress func(BulkProgress)) BulkReport {
	return RunBulk(ids, func(id uint64) error {
		_, err := RestoreOwner(kind, userID, id)
		return err
	}, onProgress)
}

// BulkPurge purges each id in turn. An id that is already gone counts
// as a no-op success: two callers emptying the same trash race purges,
// and the loser seeing ErrNotFound is a benign outcome.
func BulkPurge(kind string, userID uint64, ids []uint64, onProgress func(BulkProgress)) BulkReport {
	return RunBulk(ids, func(id uint64) error {
		err := PurgeOwner(kind, userID, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}, onProgress)
}
