package orchestrator

// Nodes of the tutoring pipeline.
const (
	NodeClassifier NodeName = "classifier"
	NodeContent    NodeName = "content"
	NodeMedia      NodeName = "media"
)

// Phase is the position of a state in the tutoring state machine.
type Phase string

const (
	PhaseStart              Phase = "start"
	PhaseClassifiedRejected Phase = "classified-rejected"
	PhaseClassifiedAccepted Phase = "classified-accepted"
	PhaseContentDone        Phase = "content-done"
	PhaseMediaDone          Phase = "media-done"
)

// RouteAfterClassifier is the single conditional edge: rejected queries end
// the run, accepted ones continue to content generation.
func RouteAfterClassifier(st *PipelineState) NodeName {
	if st.Rejected {
		return End
	}
	return NodeContent
}

// PhaseAfter reports the phase reached once node has run over st.
func PhaseAfter(node NodeName, st *PipelineState) Phase {
	switch node {
	case NodeClassifier:
		if st.Rejected {
			return PhaseClassifiedRejected
		}
		return PhaseClassifiedAccepted
	case NodeContent:
		return PhaseContentDone
	case NodeMedia:
		return PhaseMediaDone
	}
	return PhaseStart
}

// NewTutorGraph wires classifier → (conditional) → content → media → end.
func NewTutorGraph(classifier, content, media Stage) (*CompiledGraph, error) {
	return NewGraphBuilder().
		AddNode(classifier).
		AddNode(content).
		AddNode(media).
		SetEntry(NodeClassifier).
		AddConditionalEdge(NodeClassifier, RouteAfterClassifier, NodeContent, End).
		AddEdge(NodeContent, NodeMedia).
		AddEdge(NodeMedia, End).
		Compile()
}
