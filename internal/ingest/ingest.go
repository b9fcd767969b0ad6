// Package ingest validates, reads, and normalizes caller-supplied files into
// the base64 records a generation request embeds. Individual bad files become
// recorded failures rather than errors; only the file-count precondition
// fails the whole call.
package ingest

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// inlineDisplayName names inline entries whose descriptor carries no name.
const inlineDisplayName = "inline-content"

// Limits bounds one ingestion batch. Zero values disable the corresponding
// check.
type Limits struct {
	MaxCount      int
	MaxTotalBytes int64
}

// NormalizedFile is one successfully ingested file, ready to embed in a
// request part. Content is standard base64 of the original bytes and
// ContentType is never empty.
type NormalizedFile struct {
	Content     string
	ContentType string
	DisplayName string
}

// Failure records why one descriptor could not be normalized.
type Failure struct {
	DisplayName string
	Reason      string
}

// Result partitions the attempted descriptors. Successes keep input order;
// descriptors after a size-ceiling abort appear in neither list.
type Result struct {
	Successes []NormalizedFile
	Failures  []Failure
}

// Ingest processes descriptors in order. It returns an error only for the
// count precondition; everything else is reported through Result.Failures.
//
// Size accounting follows the running total of raw bytes read from disk.
// Inline entries are not counted: the caller already shipped those bytes in
// the request and is trusted to have bounded them. The first path entry that
// pushes the total over Limits.MaxTotalBytes is recorded as a failure and
// processing stops; remaining descriptors are not attempted.
func Ingest(descriptors []FileDescriptor, limits Limits) (Result, error) {
	if limits.MaxCount > 0 && len(descriptors) > limits.MaxCount {
		return Result{}, fmt.Errorf("too many files: got %d, limit is %d", len(descriptors), limits.MaxCount)
	}

	var res Result
	var total int64
	for _, d := range descriptors {
		switch d.Kind() {
		case KindInline:
			name := strings.TrimSpace(d.Name)
			if name == "" {
				name = inlineDisplayName
			}
			res.Successes = append(res.Successes, NormalizedFile{
				Content:     d.Content,
				ContentType: contentTypeForInline(d.Type),
				DisplayName: name,
			})

		case KindPath:
			p := filepath.Clean(strings.TrimSpace(d.Path))
			if strings.Contains(p, "..") {
				// Arbitrary caller-trusted locations are allowed; surface it
				// in the log, not as a rejection.
				log.Printf("ingest: path %q points outside the working directory", p)
			}
			name := filepath.Base(p)
			data, err := os.ReadFile(p)
			if err != nil {
				res.Failures = append(res.Failures, Failure{DisplayName: name, Reason: readFailureReason(err)})
				continue
			}
			total += int64(len(data))
			if limits.MaxTotalBytes > 0 && total > limits.MaxTotalBytes {
				res.Failures = append(res.Failures, Failure{
					DisplayName: name,
					Reason:      fmt.Sprintf("cumulative file size %d bytes exceeds the %d byte limit", total, limits.MaxTotalBytes),
				})
				return res, nil
			}
			res.Successes = append(res.Successes, NormalizedFile{
				Content:     base64.StdEncoding.EncodeToString(data),
				ContentType: contentTypeForPath(d.Type, p),
				DisplayName: name,
			})

		default:
			res.Failures = append(res.Failures, Failure{
				DisplayName: strings.TrimSpace(d.Name),
				Reason:      "must provide path or content",
			})
		}
	}
	return res, nil
}

func readFailureReason(err error) string {
	switch {
	case os.IsNotExist(err):
		return "file not found"
	case os.IsPermission(err):
		return "permission denied"
	default:
		return err.Error()
	}
}
