package explore

import (
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage"
)

// ExploreMonitor receives callbacks at each stage of an Explore call.
type ExploreMonitor interface {
	Start(req core.Request)
	AfterTopicRanking(topics []core.SimilarityResult)
	AfterNameResolution(query string, names []string)
	AfterFilterBuild(filters storage.Filters)
	AfterSampling(records []core.SpeechRecord)
	Finish(result *Result)
}

type noopMonitor struct{}

var _ ExploreMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.Request)                        {}
func (n *noopMonitor) AfterTopicRanking(_ []core.SimilarityResult) {}
func (n *noopMonitor) AfterNameResolution(_ string, _ []string)    {}
func (n *noopMonitor) AfterFilterBuild(_ storage.Filters)          {}
func (n *noopMonitor) AfterSampling(_ []core.SpeechRecord)         {}
func (n *noopMonitor) Finish(_ *Result)                            {}
