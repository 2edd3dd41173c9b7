package logger

// Shared log field name constants, so log queries stay consistent across the
// whole service.
const (
	// FieldTraceID trace ID field
	FieldTraceID = "trace_id"

	// FieldAction connect action name field
	FieldAction = "action"

	// FieldDeck deck name field
	FieldDeck = "deck"

	// FieldModel note type name field
	FieldModel = "model"

	// FieldNoteID note ID field
	FieldNoteID = "noteId"

	// FieldCardID card ID field
	FieldCardID = "cardId"

	// FieldDuration elapsed time field
	FieldDuration = "duration"

	// FieldMethod HTTP method field
	FieldMethod = "method"

	// FieldPath request path field
	FieldPath = "path"

	// FieldStatus HTTP status code field
	FieldStatus = "status"

	// FieldIP client address field
	FieldIP = "ip"

	// FieldError error message field
	FieldError = "error"

	// FieldSize payload size field
	FieldSize = "size"

	// FieldFilename media filename field
	FieldFilename = "filename"
)
