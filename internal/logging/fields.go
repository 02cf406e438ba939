package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldCount      = "count"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldDryRun   = "dry_run"
	FieldWrite    = "write"
	FieldCategory = "category"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldSpans           = "spans"
	FieldEdits           = "edits"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
