package container

import (
	"strings"
	"sync"
)

const (
	sectionDefault   = "default"
	sectionPipelines = "pipelines"
)

// childPipeline is one deferred registration awaiting a named
// collaborator: per §9's open question, replay semantics belong to
// that external collaborator, not to loadPipelinesFromString itself.
type childPipeline struct {
	Tag   string
	Lines []string
}

// childRegistrations accumulates registerPipelineForChilds calls per
// child-section name, for later consumption by whatever collaborator
// owns that name.
type childRegistrations struct {
	mu   sync.Mutex
	byChild map[string][]childPipeline
}

func newChildRegistrations() *childRegistrations {
	return &childRegistrations{byChild: make(map[string][]childPipeline)}
}

func (c *childRegistrations) register(child, tag string, lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byChild[child] = append(c.byChild[child], childPipeline{Tag: tag, Lines: lines})
}

// ChildPipelines returns the deferred registrations recorded for
// child, a snapshot the collaborator owning that section name applies
// however it sees fit.
func (c *Container) ChildPipelines(child string) []childPipeline {
	c.children.mu.Lock()
	defer c.children.mu.Unlock()
	out := make([]childPipeline, len(c.children.byChild[child]))
	copy(out, c.children.byChild[child])
	return out
}

// LoadPipelinesFromString parses a flat outline: "# Section" lines
// select a destination — the case-insensitive names "default" and
// "pipelines" route into this container directly, any other name
// defers the pipeline to registerPipelineForChilds — and "## tag"
// lines open a new pipeline body, flushing the previous one first.
// Every other non-empty line is a body line, appended verbatim.
func (c *Container) LoadPipelinesFromString(text string) error {
	section := sectionDefault
	var tag string
	var body []string
	haveTag := false

	flush := func() error {
		if !haveTag {
			return nil
		}
		if isOwnSection(section) {
			return c.Registry.RegisterPipeline(tag, body, true)
		}
		c.children.register(section, tag, append([]string(nil), body...))
		return nil
	}

	for _, raw := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(raw, "## "):
			if err := flush(); err != nil {
				return err
			}
			tag = strings.TrimSpace(strings.TrimPrefix(raw, "## "))
			haveTag = true
			body = nil
		case strings.HasPrefix(raw, "# "):
			if err := flush(); err != nil {
				return err
			}
			section = strings.TrimSpace(strings.TrimPrefix(raw, "# "))
			haveTag = false
			tag = ""
			body = nil
		case strings.TrimSpace(raw) == "":
			continue
		default:
			body = append(body, raw)
		}
	}
	return flush()
}

func isOwnSection(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return lower == sectionDefault || lower == sectionPipelines
}
