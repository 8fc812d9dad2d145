package graph

// Parameterized Cypher templates, one per query type. Defined at process
// start and never mutated. Each binds $topic (case-insensitive substring
// match) and receives $difficulty even where the pattern does not use it,
// so all templates share one parameter set.
const (
	vocabularyTemplate = `
        MATCH (w:Word {language: 'Afrikaans'})
        WHERE toLower(w.english) CONTAINS toLower($topic)
           OR toLower(w.afrikaans) CONTAINS toLower($topic)
        RETURN w.afrikaans as afrikaans, w.english as english, w.pronunciation as pronunciation
        LIMIT 10
    `

	storyTemplate = `
        MATCH (s:Story)
        WHERE toLower(s.title) CONTAINS toLower($topic)
           OR toLower(s.content) CONTAINS toLower($topic)
        RETURN s.title as title, s.content as content, s.difficulty as difficulty
        LIMIT 5
    `

	cultureTemplate = `
        MATCH (c:CulturalItem)
        WHERE toLower(c.name) CONTAINS toLower($topic)
           OR toLower(c.description) CONTAINS toLower($topic)
        RETURN c.name as name, c.description as description, c.category as category
        LIMIT 5
    `

	grammarTemplate = `
        MATCH (g:GrammarRule)
        WHERE toLower(g.rule) CONTAINS toLower($topic)
           OR toLower(g.explanation) CONTAINS toLower($topic)
        RETURN g.rule as rule, g.explanation as explanation, g.examples as examples
        LIMIT 5
    `

	generalTemplate = `
        MATCH (n)
        WHERE toLower(n.name) CONTAINS toLower($topic)
           OR toLower(n.content) CONTAINS toLower($topic)
           OR toLower(n.description) CONTAINS toLower($topic)
        RETURN labels(n)[0] as type, n.name as name, n.content as content, n.description as description
        LIMIT 10
    `
)

var templates = map[QueryType]string{
	QueryVocabulary: vocabularyTemplate,
	QueryStory:      storyTemplate,
	QueryCulture:    cultureTemplate,
	QueryGrammar:    grammarTemplate,
	QueryGeneral:    generalTemplate,
}

// SelectTemplate maps a query type to its Cypher template. Total: any
// unrecognized query type deterministically resolves to the general
// template. No side effects.
func SelectTemplate(queryType QueryType) string {
	if tmpl, ok := templates[queryType]; ok {
		return tmpl
	}
	return generalTemplate
}
