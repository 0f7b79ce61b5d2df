package core

import "strconv"

// TopicEntry is a single row of the topic embedding catalog.
// Entries are immutable once the catalog has been loaded.
type TopicEntry struct {
	TopicID   int       `json:"topic_id"`
	Embedding []float32 `json:"embedding"`
	Keywords  []string  `json:"keywords"`
}

// SimilarityResult pairs a topic with its cosine similarity to a query.
type SimilarityResult struct {
	TopicID int     `json:"topic_id"`
	Score   float32 `json:"score"`
}

// NameMatch is a candidate produced by fuzzy name matching.
// Score ranges from 0 to 100.
type NameMatch struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SpeechRecord is the projection of a stored speech returned to callers.
type SpeechRecord struct {
	ScrapedName string `json:"scraped_name"`
	ProcParty   string `json:"proc_party"`
	Text        string `json:"text"`
	Year        int    `json:"year"`
	PersonURL   string `json:"person_url"`
	TopicID     int    `json:"topic_id"`
}

// SpeechColumns lists the stored columns a SpeechRecord is projected from,
// in scan order.
var SpeechColumns = []string{"scraped_name", "proc_party", "text", "year", "person_url", "topic_id"}

// Request carries the five fields of an explore request as submitted by the user.
// Validation of required fields and allowed choices happens before a Request is built.
type Request struct {
	QueryString string `json:"query_string" form:"query_string"`
	TopicID     string `json:"topic_id" form:"topic_id"`
	Year        string `json:"year" form:"year"`
	Name        string `json:"name" form:"name"`
	Party       string `json:"party" form:"party"`
}

// Sentinel defaults meaning "this field is unconstrained".
const (
	AnyTopic = ""
	AnyYear  = "Any Year"
	AnyName  = ""
	AnyParty = "Any Party"
)

// DefaultRequest returns the request used when the explore page is first shown.
func DefaultRequest() Request {
	return Request{
		QueryString: "schools",
		TopicID:     "0",
		Year:        strconv.Itoa(2023),
		Name:        "Rishi Sunak",
		Party:       "Conservative",
	}
}

// WithQuery returns a copy of r with the query string replaced.
func (r Request) WithQuery(query string) Request {
	r.QueryString = query
	return r
}
