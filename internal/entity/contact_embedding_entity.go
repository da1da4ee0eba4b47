package entity

// ContactEmbedding is one contact of a user together with its stored vector.
// Embedding is kept as the raw JSON text so that a malformed row can be skipped
// by the retriever instead of failing the whole read.
type ContactEmbedding struct {
	Id           int64
	UserId       int64
	ContactId    int64
	Name         *string
	Phone        string
	ProfileText  string
	ContextHash  string
	Embedding    string
	NeedsRebuild bool
}
