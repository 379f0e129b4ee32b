// Package dataprocessing loads the merged Netflix dataset and builds the
// immutable Snapshot every chart analysis reads from.
//
// # Architecture
//
// The package is organized into three parts:
//
// 1. Loader: reads the CSV (or XLSX) file and parses typed ContentRecords
// 2. Normalizer: canonicalizes genre and country text and splits multi-value fields
// 3. Snapshot: holds the records and their derived per-row columns, read-only
//
// # Usage
//
//	records, err := dataprocessing.LoadDataset("data/netflix_final_merged.csv")
//	if err != nil {
//	    return err // *DataLoadError
//	}
//	snapshot := dataprocessing.NewSnapshot(records, "data/netflix_final_merged.csv")
//
// # Data Flow
//
//	CSV/XLSX → Loader → []ContentRecord → NewSnapshot → Snapshot → charts
//
// # Error Handling
//
// Every load failure is returned as a *DataLoadError carrying the file path and,
// when known, the row and column. A missing file, a missing required column, an
// unparseable date or a malformed number all fail the load. Missing values are
// not errors: an empty date leaves the record undated, empty scores, prices and
// volatility become NaN and empty vote counts become zero.
//
// # Thread Safety
//
// A Snapshot is never mutated after NewSnapshot returns and is safe for
// concurrent readers.
package dataprocessing
