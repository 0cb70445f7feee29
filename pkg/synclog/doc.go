// Package synclog parses connector sync logs into structured summaries.
//
// Quick start:
//
//	res, err := synclog.Analyze("sync.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Sync.Status, res.RecordCounts.Total)
//
// Every result carries the full schema: fields the log did not populate hold
// explicit unknown/empty markers rather than missing keys, so consumers can
// navigate the document structurally. Analyze only fails on an unreadable
// file; partial or malformed logs still produce a best-effort result.
package synclog
