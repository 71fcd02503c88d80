package texttosql

import "encoding/json"

// buildSQLPrompt composes the generation prompt: schema description plus
// the user's question.
func buildSQLPrompt(question string) string {
	return "You are a PostgreSQL expert. Generate one SQL query that answers the user's question,\n" +
		"based on the following database schema.\n\n" +
		"Schema:\n" + schemaDDL + "\n" +
		"User question:\n" +
		"\"" + question + "\"\n\n" +
		"Rules:\n" +
		"1. Output ONLY the SQL query - no explanation, no ```sql fences.\n" +
		"2. The query must be valid PostgreSQL.\n" +
		"3. Use table and column names exactly as they appear in the schema, including quotes.\n" +
		"4. For questions about \"this month\" or other relative periods, anchor on CURRENT_DATE.\n" +
		"5. To filter by an expense classification, join movimentos through movimento_classificacao\n" +
		"   to classificacao and match on classificacao.descricao.\n\n" +
		"SQL query:\n"
}

// buildAnswerPrompt composes the synthesis prompt: the original question
// plus the rows returned by the store, embedded verbatim.
func buildAnswerPrompt(question string, rows json.RawMessage) string {
	return "You are a helpful bookkeeping assistant.\n" +
		"The user's original question was: \"" + question + "\"\n\n" +
		"The data retrieved for that question, as JSON, is:\n" +
		string(rows) + "\n\n" +
		"Write a complete, friendly answer for the user.\n" +
		"- If the data is a single number (such as a sum or count), state it directly.\n" +
		"- If the data is empty or \"[]\", say plainly that no information was found.\n" +
		"- If the data is a list, summarize it instead of dumping every row.\n" +
		"- Never mention \"SQL\" or \"database\" in your answer.\n\n" +
		"Final answer:\n"
}
