package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleSystem = "system"

	NoProfileText = "(no profile text)"

	ContactFilterSystemPrompt = `You are a strict filter. The user wrote a query about people in their contacts.
Decide which candidates truly match the intent of the user query.
IMPORTANT:
- If the query implies negative sentiment (hate, dislike, avoid), do NOT select people described positively.
- If there is not enough evidence, mark match=false.
- Return JSON only.`
)
