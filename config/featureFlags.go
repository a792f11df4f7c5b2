package config

import (
	"os"
	"strings"
)

// AuditPublishEnabled gates the outbox dispatcher's Pub/Sub publishing.
// Outbox rows are always written; without this flag they are marked skipped.
//
// Set via env:
// - MIS_AUDIT_PUBLISH=true
func AuditPublishEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MIS_AUDIT_PUBLISH")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ExportArchiveBucket returns the GCS bucket for archiving generated
// export documents. Empty means archiving is disabled.
//
// Set via env:
// - EXPORT_ARCHIVE_BUCKET=my-bucket
func ExportArchiveBucket() string {
	return strings.TrimSpace(os.Getenv("EXPORT_ARCHIVE_BUCKET"))
}
