package sessions

import (
	"iter"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
)

// WholeRange is the chunk size meaning "no chunking": the full range is
// produced as a single chunk.
const WholeRange = 0

// DateRange is an inclusive pair of session dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ComputeDateRangeChunks splits the sessions between start and end
// (inclusive) into consecutive chunks of at most chunkSize sessions.
//
// Both start and end must be sessions of cal; they are not rolled. Checks run
// in this order, before anything is produced:
//  1. start not in cal: NotFound "Start date <start> is not found in calendar."
//  2. end not in cal: NotFound "End date <end> is not found in calendar."
//  3. end before start: InvalidRange "End date <end> cannot precede start date <start>."
//  4. chunkSize < 0: InvalidArgument "Chunk size <n> must be a positive integer."
//
// With chunkSize == WholeRange a single chunk (start, end) is produced. The
// returned sequence is computed lazily from cal while it is ranged over.
func ComputeDateRangeChunks(cal Calendar, start, end time.Time, chunkSize int) (iter.Seq[DateRange], error) {
	i0, i1, err := locateRange(cal, start, end)
	if err != nil {
		return nil, err
	}
	if chunkSize < 0 {
		return nil, apperror.Newf(apperror.InvalidArgument, "Chunk size %d must be a positive integer.", chunkSize)
	}

	n := i1 - i0 + 1
	if chunkSize == WholeRange || chunkSize > n {
		chunkSize = n
	}

	return func(yield func(DateRange) bool) {
		for lo := i0; lo <= i1; lo += chunkSize {
			hi := min(lo+chunkSize-1, i1)
			if !yield(DateRange{Start: cal.At(lo), End: cal.At(hi)}) {
				return
			}
		}
	}, nil
}

// CountChunks returns how many chunks ComputeDateRangeChunks would produce,
// applying the same validation, without walking the range.
func CountChunks(cal Calendar, start, end time.Time, chunkSize int) (int, error) {
	i0, i1, err := locateRange(cal, start, end)
	if err != nil {
		return 0, err
	}
	if chunkSize < 0 {
		return 0, apperror.Newf(apperror.InvalidArgument, "Chunk size %d must be a positive integer.", chunkSize)
	}
	n := i1 - i0 + 1
	if chunkSize == WholeRange || chunkSize >= n {
		return 1, nil
	}
	return (n + chunkSize - 1) / chunkSize, nil
}

// locateRange resolves the exact session indexes of start and end.
func locateRange(cal Calendar, start, end time.Time) (int, int, error) {
	s, e := Day(start), Day(end)

	i0, ok := cal.Search(s)
	if !ok {
		return 0, 0, apperror.Newf(apperror.NotFound, "Start date %s is not found in calendar.", iso(s))
	}
	i1, ok := cal.Search(e)
	if !ok {
		return 0, 0, apperror.Newf(apperror.NotFound, "End date %s is not found in calendar.", iso(e))
	}
	if i1 < i0 {
		return 0, 0, apperror.Newf(apperror.InvalidRange, "End date %s cannot precede start date %s.", iso(e), iso(s))
	}
	return i0, i1, nil
}
