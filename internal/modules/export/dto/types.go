package dto

type DocumentInput struct {
	Format string
}

type DocumentOutput struct {
	Format  string
	Content []byte
}

type NotesInput struct {
	Dir string
}

type NotesOutput struct {
	Paths []string
	// Skipped counts active tasks, which get no note.
	Skipped int
}
