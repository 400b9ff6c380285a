package migrations

import _ "embed"

// DocumentsUp creates the documents table; safe to run more than once.
//
//go:embed 01_documents.up.sql
var DocumentsUp string
