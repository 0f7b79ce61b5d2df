package explore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/fuzzy"
	"github.com/poiesic/hansard/sampler"
	"github.com/poiesic/hansard/storage"
)

const (
	defaultTopN  = 5
	defaultTable = "hansard"

	// NoResultsMessage is reported when no speeches match a request.
	NoResultsMessage = "No speeches found"
)

// NameMode selects how the name field filters speeches.
type NameMode int

const (
	// NameExact matches scraped_name literally.
	NameExact NameMode = iota
	// NameFuzzy expands the name to similar known names first.
	NameFuzzy
)

// ParseNameMode parses "exact" or "fuzzy".
func ParseNameMode(s string) (NameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return NameExact, nil
	case "fuzzy":
		return NameFuzzy, nil
	default:
		return NameExact, fmt.Errorf("unknown name mode %q", s)
	}
}

func (m NameMode) String() string {
	if m == NameFuzzy {
		return "fuzzy"
	}
	return "exact"
}

// TopicFinder ranks catalog topics against free text.
type TopicFinder interface {
	FindTopics(ctx context.Context, text string, topN int) ([]core.SimilarityResult, error)
}

// KeywordSource looks up a topic's keywords.
type KeywordSource interface {
	KeywordsOf(topicID int) ([]string, error)
}

// Sentinels are the request values meaning "do not filter on this field".
type Sentinels struct {
	Topic string
	Year  string
	Name  string
	Party string
}

// DefaultSentinels returns the sentinels used by the explore form.
func DefaultSentinels() Sentinels {
	return Sentinels{
		Topic: core.AnyTopic,
		Year:  core.AnyYear,
		Name:  core.AnyName,
		Party: core.AnyParty,
	}
}

// Result is the outcome of one Explore call.
type Result struct {
	Request       core.Request            `json:"request"`
	Topics        []core.SimilarityResult `json:"topics"`
	TopicKeywords []string                `json:"topic_keywords"`
	MissingTopics []int                   `json:"missing_topics,omitempty"`
	ResolvedNames []string                `json:"resolved_names,omitempty"`
	Speeches      []core.SpeechRecord     `json:"speeches"`
	NoResults     bool                    `json:"no_results"`
	Message       string                  `json:"message,omitempty"`
}

// Explorer runs the explore flow: rank topics for the query, then sample
// speeches matching the topic/year/name/party filters.
type Explorer struct {
	finder     TopicFinder
	keywords   KeywordSource
	sampler    *sampler.Sampler
	resolver   *fuzzy.Resolver
	knownNames []string
	table      string
	topN       int
	nameMode   NameMode
	sentinels  Sentinels
	logger     *slog.Logger
}

// Option configures an Explorer.
type Option func(*Explorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithTable sets the speech table. Default is "hansard".
func WithTable(table string) Option {
	return func(e *Explorer) error {
		if !storage.ValidIdentifier(table) {
			return fmt.Errorf("%w: table %q", storage.ErrInvalidIdentifier, table)
		}
		e.table = table
		return nil
	}
}

// WithTopN sets how many topics are ranked per query. Default is 5.
func WithTopN(n int) Option {
	return func(e *Explorer) error {
		if n <= 0 {
			return ErrInvalidTopN
		}
		e.topN = n
		return nil
	}
}

// WithSentinels replaces the "no filter" request values.
func WithSentinels(s Sentinels) Option {
	return func(e *Explorer) error {
		e.sentinels = s
		return nil
	}
}

// WithFuzzyNames switches name filtering to fuzzy mode, resolving request
// names against known before filtering.
func WithFuzzyNames(resolver *fuzzy.Resolver, known []string) Option {
	return func(e *Explorer) error {
		if resolver == nil {
			return ErrResolverRequired
		}
		e.resolver = resolver
		e.knownNames = known
		e.nameMode = NameFuzzy
		return nil
	}
}

// New creates an explorer.
func New(finder TopicFinder, keywords KeywordSource, s *sampler.Sampler, opts ...Option) (*Explorer, error) {
	if finder == nil {
		return nil, ErrTopicFinderRequired
	}
	if keywords == nil {
		return nil, ErrKeywordSourceRequired
	}
	if s == nil {
		return nil, ErrSamplerRequired
	}

	e := &Explorer{
		finder:    finder,
		keywords:  keywords,
		sampler:   s,
		table:     defaultTable,
		topN:      defaultTopN,
		nameMode:  NameExact,
		sentinels: DefaultSentinels(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NameMode reports how names are matched.
func (e *Explorer) NameMode() NameMode {
	return e.nameMode
}

// Explore handles one request.
func (e *Explorer) Explore(ctx context.Context, req core.Request) (*Result, error) {
	return e.ExploreWithMonitor(ctx, req, nil)
}

// ExploreWithMonitor handles one request, reporting each stage to monitor.
//
// An empty query string skips topic ranking. Topics the catalog does not
// know are logged and listed in Result.MissingTopics rather than failing
// the request. No matching speeches is reported through Result.NoResults,
// not as an error.
func (e *Explorer) ExploreWithMonitor(ctx context.Context, req core.Request, monitor ExploreMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	req = normalize(req)
	monitor.Start(req)

	result := &Result{
		Request:       req,
		Topics:        []core.SimilarityResult{},
		TopicKeywords: []string{},
		Speeches:      []core.SpeechRecord{},
	}

	// 1. Rank topics for the query
	if req.QueryString != "" {
		topics, err := e.finder.FindTopics(ctx, req.QueryString, e.topN)
		if err != nil {
			e.logger.Error("error ranking topics", "query", req.QueryString, "err", err)
			return nil, err
		}
		result.Topics = topics
	}
	monitor.AfterTopicRanking(result.Topics)

	// 2. Keywords for each ranked topic, in rank order
	for _, topic := range result.Topics {
		kw, err := e.keywords.KeywordsOf(topic.TopicID)
		if err != nil {
			e.logger.Warn("skipping topic missing from catalog", "topic", topic.TopicID, "err", err)
			result.MissingTopics = append(result.MissingTopics, topic.TopicID)
			continue
		}
		result.TopicKeywords = append(result.TopicKeywords, FormatTopicKeywords(topic.TopicID, kw))
	}

	// 3. Filters
	nameClause, ok := e.nameFilter(req.Name, result, monitor)
	if !ok {
		return e.finish(result, monitor), nil
	}
	filters := storage.Filters{
		storage.BuildFilter("topic_id", "AND", bindValue(req.TopicID), bindValue(e.sentinels.Topic)),
		storage.BuildFilter("year", "AND", bindValue(req.Year), bindValue(e.sentinels.Year)),
		storage.BuildFilter("proc_party", "AND", req.Party, e.sentinels.Party),
		nameClause,
	}
	monitor.AfterFilterBuild(filters)

	// 4. Sample
	speeches, err := e.sampler.Sample(ctx, e.table, filters)
	if err != nil {
		e.logger.Error("error sampling speeches", "err", err)
		return nil, err
	}
	monitor.AfterSampling(speeches)
	result.Speeches = speeches

	return e.finish(result, monitor), nil
}

// nameFilter builds the name clause. It returns false when fuzzy resolution
// found no candidates, in which case nothing can match.
func (e *Explorer) nameFilter(name string, result *Result, monitor ExploreMonitor) (storage.Clause, bool) {
	if e.nameMode == NameExact || name == e.sentinels.Name {
		return storage.BuildFilter("scraped_name", "AND", name, e.sentinels.Name), true
	}

	names := e.resolver.Resolve(name, e.knownNames)
	monitor.AfterNameResolution(name, names)
	result.ResolvedNames = names
	if len(names) == 0 {
		e.logger.Debug("no known names match", "name", name)
		return storage.Clause{}, false
	}
	return storage.BuildAnyOf("scraped_name", "AND", names), true
}

func (e *Explorer) finish(result *Result, monitor ExploreMonitor) *Result {
	if len(result.Speeches) == 0 {
		result.NoResults = true
		result.Message = NoResultsMessage
	}
	monitor.Finish(result)
	return result
}

// FormatTopicKeywords renders a topic line as "topic #<id> keywords: [k1, k2]".
func FormatTopicKeywords(topicID int, keywords []string) string {
	return fmt.Sprintf("topic #%d keywords: [%s]", topicID, strings.Join(keywords, ", "))
}

// bindValue binds integer-looking values as int64 so they compare
// numerically against integer columns.
func bindValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

func normalize(req core.Request) core.Request {
	req.QueryString = strings.TrimSpace(req.QueryString)
	req.TopicID = strings.TrimSpace(req.TopicID)
	req.Year = strings.TrimSpace(req.Year)
	req.Name = strings.TrimSpace(req.Name)
	req.Party = strings.TrimSpace(req.Party)
	return req
}
